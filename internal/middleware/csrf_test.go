// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func csrfHandler() http.Handler {
	return NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

// issueCSRF performs a GET and returns the cookie the middleware set.
func issueCSRF(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/settings", nil))
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func withSessionPrincipal(r *http.Request) *http.Request {
	return r.WithContext(WithPrincipal(r.Context(), &Principal{UserID: uuid.New(), Username: "admin", Method: AuthSession}))
}

func TestNewCSRFSecureFlag(t *testing.T) {
	tests := []struct {
		name   string
		secure bool
	}{
		{"secure true", true},
		{"secure false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCSRF(tt.secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/videos", nil))

			found := false
			for _, c := range rr.Result().Cookies() {
				if c.Name != CSRFCookieName {
					continue
				}
				found = true
				if c.Secure != tt.secure {
					t.Errorf("cookie Secure: got %v, want %v", c.Secure, tt.secure)
				}
				if c.HttpOnly {
					t.Error("cookie must be readable by the frontend")
				}
				if len(c.Value) != csrfTokenLength*2 {
					t.Errorf("cookie Value length: got %d, want %d", len(c.Value), csrfTokenLength*2)
				}
			}
			if !found {
				t.Error("CSRF cookie not set")
			}
		})
	}
}

func TestCSRFKeepsExistingCookie(t *testing.T) {
	h := csrfHandler()
	cookie := issueCSRF(t, h)

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if len(rr.Result().Cookies()) != 0 {
		t.Error("existing CSRF cookie should not be reissued")
	}
	if got := GetCSRFToken(req); got != cookie.Value {
		t.Errorf("GetCSRFToken: got %q, want %q", got, cookie.Value)
	}
}

func TestGetCSRFTokenSeesIssuedToken(t *testing.T) {
	var seen string
	h := NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCSRFToken(r)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	var issued string
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			issued = c.Value
		}
	}
	if issued == "" {
		t.Fatal("CSRF cookie not set")
	}
	if seen != issued {
		t.Errorf("GetCSRFToken in handler: got %q, want the issued %q", seen, issued)
	}
}

func TestCSRFSessionMutations(t *testing.T) {
	h := csrfHandler()
	cookie := issueCSRF(t, h)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing token", "", http.StatusForbidden},
		{"wrong token", "deadbeef", http.StatusForbidden},
		{"matching token", cookie.Value, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/settings", nil)
			req.AddCookie(cookie)
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, withSessionPrincipal(req))

			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestCSRFUnsafeMethodsRequireToken(t *testing.T) {
	h := csrfHandler()
	cookie := issueCSRF(t, h)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/videos/x", nil)
			req.AddCookie(cookie)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, withSessionPrincipal(req))

			if rr.Code != http.StatusForbidden {
				t.Errorf("%s without token: got %d, want 403", method, rr.Code)
			}
		})
	}
}

func TestCSRFSafeMethodsPassThrough(t *testing.T) {
	h := csrfHandler()

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		t.Run(method, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, withSessionPrincipal(httptest.NewRequest(method, "/videos", nil)))

			if rr.Code != http.StatusOK {
				t.Errorf("%s: got %d, want 200", method, rr.Code)
			}
		})
	}
}

func TestCSRFSkipsNonCookieAuth(t *testing.T) {
	h := csrfHandler()

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/videos", nil)
		req = req.WithContext(WithPrincipal(req.Context(), &Principal{UserID: uuid.New(), Method: AuthBearer}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("bearer POST: got %d, want 200", rr.Code)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

		if rr.Code != http.StatusOK {
			t.Errorf("anonymous POST: got %d, want 200", rr.Code)
		}
	})
}

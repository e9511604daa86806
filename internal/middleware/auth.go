// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"folio/internal/auth"
	"folio/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"

	// PrincipalKey is the context key for the authenticated caller.
	PrincipalKey contextKey = "principal"
)

// AuthMethod records how a request was authenticated.
type AuthMethod string

const (
	AuthSession AuthMethod = "session"
	AuthBearer  AuthMethod = "bearer"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Method   AuthMethod
}

// TokenParser verifies bearer tokens. *auth.Issuer satisfies it.
type TokenParser interface {
	Parse(token string) (*auth.Claims, uuid.UUID, error)
}

// StampSource returns the current PasswordStamp of a user. A token whose
// stamp differs predates a password change.
type StampSource interface {
	CredentialStamp(ctx context.Context, userID uuid.UUID) (string, error)
}

// LoadSession retrieves the session from Valkey and stores it in the
// request context. Downstream handlers can access it via SessionFromCtx().
// This middleware does NOT enforce authentication; it just loads the
// session if one exists. A nil store disables cookie sessions.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session load failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				ctx := context.WithValue(r.Context(), SessionKey, data)
				ctx = withPrincipal(ctx, &Principal{UserID: data.UserID, Username: data.Username, Method: AuthSession})
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadBearer authenticates "Authorization: Bearer <token>" headers. An
// invalid token is ignored here and rejected later by RequireAuth. When
// stamps is non-nil, tokens issued before the user's last password change
// are ignored too.
func LoadBearer(tokens TokenParser, stamps StampSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" || PrincipalFromCtx(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, id, err := tokens.Parse(token)
			if err != nil {
				slog.Debug("bearer token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if stamps != nil {
				current, err := stamps.CredentialStamp(r.Context(), id)
				if err != nil || current != claims.Stamp {
					slog.Debug("bearer token revoked", "user_id", id, "error", err)
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := withPrincipal(r.Context(), &Principal{UserID: id, Username: claims.Username, Method: AuthBearer})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without an authenticated principal.
// Must be applied after LoadSession and LoadBearer in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromCtx(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// BearerToken returns the token of an Authorization: Bearer header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// PrincipalFromCtx returns the authenticated caller, or nil.
func PrincipalFromCtx(ctx context.Context) *Principal {
	p, _ := ctx.Value(PrincipalKey).(*Principal)
	return p
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// WithPrincipal returns a copy of ctx carrying p. Tests use it to simulate
// an authenticated request.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return withPrincipal(ctx, p)
}

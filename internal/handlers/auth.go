// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"folio/internal/auth"
	"folio/internal/content"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/session"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	svc      *content.Service
	sessions *session.Store // nil disables cookie sessions
	tokens   *auth.Issuer
}

// NewAuth creates a new Auth handler group.
func NewAuth(svc *content.Service, sessions *session.Store, tokens *auth.Issuer) *Auth {
	return &Auth{svc: svc, sessions: sessions, tokens: tokens}
}

type loginRequest struct {
	Username string `json:"username" validate:"max=100"`
	Password string `json:"password" validate:"max=72"`
	Code     string `json:"code" validate:"omitempty,len=6,numeric"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	CSRFToken string       `json:"csrfToken,omitempty"`
	User      *models.User `json:"user"`
}

type passwordResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type codeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// Login checks credentials (and the TOTP code when 2FA is enabled), then
// returns a bearer token and, when sessions are available, sets the
// session cookie.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err, "Login failed")
		return
	}

	user, err := a.svc.Login(r.Context(), content.LoginInput{
		Username: req.Username,
		Password: req.Password,
		Code:     req.Code,
	})
	if err != nil {
		if content.IsUnauthorized(err) {
			slog.Warn("login rejected", "username", req.Username, "remote", r.RemoteAddr)
		}
		fail(w, r, err, "Login failed")
		return
	}

	a.respondSignedIn(w, r, user)
}

// respondSignedIn issues a token, starts a cookie session, and writes the
// login response.
func (a *Auth) respondSignedIn(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := a.tokens.Issue(user.ID, user.Username, auth.PasswordStamp(user.PasswordHash))
	if err != nil {
		fail(w, r, err, "Login failed")
		return
	}

	if a.sessions != nil {
		if _, err := a.sessions.Create(r.Context(), w, &session.Data{UserID: user.ID, Username: user.Username}); err != nil {
			// Bearer auth still works without the cookie.
			slog.Error("session create failed", "error", err)
		}
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(a.tokens.TTL()).UTC(),
		CSRFToken: middleware.GetCSRFToken(r),
		User:      user,
	})
}

// Logout destroys the cookie session, if any. Bearer tokens are stateless
// and simply expire.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if a.sessions != nil {
		if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
			slog.Warn("session destroy failed", "error", err)
		}
	}
	respondMessage(w, "Logged out")
}

// Me returns the signed-in user.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())

	user, err := a.svc.User(r.Context(), p.UserID)
	if err != nil {
		if content.IsNotFound(err) {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		fail(w, r, err, "Failed to fetch user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ChangePassword replaces the signed-in user's password. Every cookie
// session of the user is revoked; a cookie caller gets a fresh one.
// Earlier bearer tokens stop verifying, so the response carries a new one.
func (a *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())

	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err, "Failed to change password")
		return
	}

	ctx := r.Context()
	err := a.svc.ChangePassword(ctx, p.UserID, content.PasswordChange{
		Current: req.CurrentPassword,
		New:     req.NewPassword,
		Confirm: req.ConfirmPassword,
	})
	if err != nil {
		fail(w, r, err, "Failed to change password")
		return
	}

	if a.sessions != nil {
		n, err := a.sessions.DestroyUser(ctx, p.UserID)
		if err != nil {
			slog.Warn("session revoke failed", "error", err, "user_id", p.UserID)
		} else if n > 0 {
			slog.Info("sessions revoked", "user_id", p.UserID, "count", n)
		}
		if p.Method == middleware.AuthSession {
			if _, err := a.sessions.Create(ctx, w, &session.Data{UserID: p.UserID, Username: p.Username}); err != nil {
				slog.Error("session create failed", "error", err)
			}
		}
	}

	user, err := a.svc.User(ctx, p.UserID)
	if err != nil {
		fail(w, r, err, "Failed to change password")
		return
	}
	token, err := a.tokens.Issue(user.ID, user.Username, auth.PasswordStamp(user.PasswordHash))
	if err != nil {
		fail(w, r, err, "Failed to change password")
		return
	}
	respondJSON(w, http.StatusOK, passwordResponse{
		Message:   "Password updated successfully",
		Token:     token,
		ExpiresAt: time.Now().Add(a.tokens.TTL()).UTC(),
	})
}

// SetupTOTP starts two-factor enrollment and returns the secret with a
// base64 PNG QR code.
func (a *Auth) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())

	key, err := a.svc.BeginTOTPSetup(r.Context(), p.UserID)
	if err != nil {
		fail(w, r, err, "Failed to start two-factor setup")
		return
	}
	respondJSON(w, http.StatusOK, key)
}

// EnableTOTP confirms enrollment with a code from the authenticator app.
func (a *Auth) EnableTOTP(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())

	var req codeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err, "Failed to enable two-factor authentication")
		return
	}

	if err := a.svc.EnableTOTP(r.Context(), p.UserID, req.Code); err != nil {
		fail(w, r, err, "Failed to enable two-factor authentication")
		return
	}
	respondMessage(w, "Two-factor authentication enabled")
}

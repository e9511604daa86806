// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"folio/internal/auth"
	"folio/internal/models"
)

// LoginInput is a credentials check. Code is required only when the user
// has enabled two-factor authentication.
type LoginInput struct {
	Username string
	Password string
	Code     string
}

// PasswordChange is a request to replace the signed-in user's password.
type PasswordChange struct {
	Current string
	New     string
	Confirm string
}

var errBadCredentials = &UnauthorizedError{Msg: "Invalid username or password"}

// Login verifies credentials and, when enabled, the TOTP code.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, invalid("Username and password are required")
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, errBadCredentials
	}
	if u.Needs2FACode() && !auth.ValidateTOTP(strings.TrimSpace(in.Code), *u.TOTPSecret) {
		return nil, &UnauthorizedError{Msg: "Invalid two-factor code"}
	}
	return u, nil
}

// User returns the account with id.
func (s *Service) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, &NotFoundError{Resource: "User", Key: id.String()}
	}
	return u, nil
}

// CredentialStamp returns the PasswordStamp of the user's current hash.
// Bearer tokens carrying another stamp were issued before a password change.
func (s *Service) CredentialStamp(ctx context.Context, id uuid.UUID) (string, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return "", err
	}
	return auth.PasswordStamp(u.PasswordHash), nil
}

// ChangePassword replaces the user's password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, in PasswordChange) error {
	if err := checkNewPassword(in.New, in.Confirm); err != nil {
		return err
	}

	u, err := s.User(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, in.Current) {
		return invalid("Current password is incorrect")
	}
	return s.storePassword(ctx, u.ID, in.New)
}

// ResetPassword sets a new password for username without knowing the old
// one. It backs the operator CLI.
func (s *Service) ResetPassword(ctx context.Context, username, password string) error {
	if err := checkNewPassword(password, password); err != nil {
		return err
	}
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return &NotFoundError{Resource: "User", Key: username}
	}
	return s.storePassword(ctx, u.ID, password)
}

// CreateUser adds an account with a hashed password.
func (s *Service) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("Username is required")
	}
	if err := checkNewPassword(password, password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, username, strings.TrimSpace(email), hash)
	if errors.Is(err, ErrDuplicate) {
		return nil, &ConflictError{Msg: "User already exists"}
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// BeginTOTPSetup generates and stores a new, not yet enabled, TOTP secret.
func (s *Service) BeginTOTPSetup(ctx context.Context, id uuid.UUID) (*auth.TOTPKey, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.TOTPEnabled {
		return nil, &ConflictError{Msg: "Two-factor authentication is already enabled"}
	}
	key, err := auth.GenerateTOTP(u.Username)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetTOTPSecret(ctx, u.ID, key.Secret); err != nil {
		return nil, fmt.Errorf("save totp secret: %w", err)
	}
	return key, nil
}

// EnableTOTP turns on two-factor login once code matches the pending secret.
func (s *Service) EnableTOTP(ctx context.Context, id uuid.UUID, code string) error {
	u, err := s.User(ctx, id)
	if err != nil {
		return err
	}
	if u.TOTPSecret == nil {
		return invalid("Two-factor setup has not been started")
	}
	if !auth.ValidateTOTP(strings.TrimSpace(code), *u.TOTPSecret) {
		return invalid("Invalid code")
	}
	if err := s.users.EnableTOTP(ctx, u.ID); err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// ResetTOTP disables two-factor login for username. It backs the operator CLI.
func (s *Service) ResetTOTP(ctx context.Context, username string) error {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return &NotFoundError{Resource: "User", Key: username}
	}
	if err := s.users.ResetTOTP(ctx, u.ID); err != nil {
		return fmt.Errorf("reset totp: %w", err)
	}
	return nil
}

func checkNewPassword(password, confirm string) error {
	if len(password) < auth.MinPasswordLength {
		return invalid("Password must be at least %d characters", auth.MinPasswordLength)
	}
	if password != confirm {
		return invalid("Passwords do not match")
	}
	return nil
}

func (s *Service) storePassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"folio/internal/content"
	"folio/internal/database"
	"folio/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	conn
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB, d database.Dialect) *UserStore {
	return &UserStore{conn: newConn(db, d)}
}

const userColumns = `id, username, email, password_hash, totp_secret, totp_enabled, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.TOTPSecret, &u.TOTPEnabled, ts(&u.CreatedAt), ts(&u.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	u, err := scanUser(s.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.findOne(ctx, "username = ?", username)
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.findOne(ctx, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Count returns the number of users.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// Create inserts a new user with an already hashed password. A taken
// username yields content.ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	_, now := s.timestamp()
	u, err := scanUser(s.queryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, totp_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		uuid.New(), username, email, passwordHash, false, now, now,
	))
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create user %s: %w", username, content.ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// update sets columns on one user and bumps updated_at.
func (s *UserStore) update(ctx context.Context, what string, id uuid.UUID, set string, args ...any) error {
	_, now := s.timestamp()
	args = append(args, now, id)
	res, err := s.exec(ctx, `UPDATE users SET `+set+`, updated_at = ? WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return affected(res, content.ErrNotFound)
}

// UpdatePassword replaces the stored password hash.
func (s *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return s.update(ctx, "update password", id, "password_hash = ?", passwordHash)
}

// SetTOTPSecret saves the TOTP secret for a user (during 2FA setup).
func (s *UserStore) SetTOTPSecret(ctx context.Context, id uuid.UUID, secret string) error {
	return s.update(ctx, "set totp secret", id, "totp_secret = ?", secret)
}

// EnableTOTP marks 2FA as active for a user (after successful code verification).
func (s *UserStore) EnableTOTP(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, "enable totp", id, "totp_enabled = ?", true)
}

// ResetTOTP clears the TOTP secret and disables 2FA for a user.
func (s *UserStore) ResetTOTP(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, "reset totp", id, "totp_secret = NULL, totp_enabled = ?", false)
}

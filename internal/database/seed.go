// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"folio/internal/models"
	"folio/internal/settings"
)

// DefaultCategories are created on first seed. "all" must always exist.
var DefaultCategories = []string{
	models.CategoryAll,
	"VideoCommish",
	"GTACommish",
	"GTACommish/Vehicle",
	"GTACommish/Outfits",
}

// SeedOptions describes the initial admin account.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// Seed populates the database with initial data. Every step is idempotent:
// the admin is created only if no user exists, while default categories and
// settings are inserted only when missing.
func Seed(ctx context.Context, db *sql.DB, d Dialect, opts SeedOptions) error {
	if err := seedAdmin(ctx, db, d, opts); err != nil {
		return err
	}

	now := d.Time(time.Now())
	for _, name := range DefaultCategories {
		_, err := db.ExecContext(ctx, d.Rebind(`
			INSERT INTO categories (name, created_at, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT (name) DO NOTHING
		`), name, now, now)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}

	for _, key := range []string{models.SettingAboutMe, models.SettingPortfolio, models.SettingContact} {
		value, _ := settings.Default(key)
		_, err := db.ExecContext(ctx, d.Rebind(`
			INSERT INTO site_settings (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT (key) DO NOTHING
		`), key, value, now)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}

	slog.Info("database seeded", "categories", len(DefaultCategories))
	return nil
}

// seedAdmin inserts the admin account when the users table is empty.
// Two-factor authentication starts disabled.
func seedAdmin(ctx context.Context, db *sql.DB, d Dialect, opts SeedOptions) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("admin user exists, skipping")
		return nil
	}

	if opts.AdminUsername == "" || opts.AdminPassword == "" {
		return fmt.Errorf("seed admin: username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	now := d.Time(time.Now())
	_, err = db.ExecContext(ctx, d.Rebind(`
		INSERT INTO users (id, username, email, password_hash, totp_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), uuid.New(), opts.AdminUsername, opts.AdminEmail, string(hash), false, now, now)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with admin user", "username", opts.AdminUsername)
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"folio/internal/database"
	"folio/internal/models"
)

// SiteSettingStore manages key/value settings in the database.
type SiteSettingStore struct {
	conn
}

// NewSiteSettingStore returns a new SiteSettingStore backed by the given database.
func NewSiteSettingStore(db *sql.DB, d database.Dialect) *SiteSettingStore {
	return &SiteSettingStore{conn: newConn(db, d)}
}

func scanSetting(scanner interface{ Scan(...any) error }) (*models.Setting, error) {
	var st models.Setting
	if err := scanner.Scan(&st.Key, &st.Value, ts(&st.UpdatedAt)); err != nil {
		return nil, err
	}
	return &st, nil
}

// All returns every setting as a convenience map.
func (s *SiteSettingStore) All(ctx context.Context) (models.SiteSettings, error) {
	rows, err := s.query(ctx, `SELECT key, value FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(models.SiteSettings)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// Get returns a single setting by key, or nil if it does not exist.
func (s *SiteSettingStore) Get(ctx context.Context, key string) (*models.Setting, error) {
	st, err := scanSetting(s.queryRow(ctx, `SELECT key, value, updated_at FROM site_settings WHERE key = ?`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return st, nil
}

// Set upserts a single setting. Creates it if it doesn't exist.
func (s *SiteSettingStore) Set(ctx context.Context, key, value string) (*models.Setting, error) {
	_, now := s.timestamp()
	st, err := scanSetting(s.queryRow(ctx, `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		RETURNING key, value, updated_at`,
		key, value, now,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}
	return st, nil
}

// SetMany updates multiple settings in a single transaction.
func (s *SiteSettingStore) SetMany(ctx context.Context, settings map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.dialect.Rebind(`
		INSERT INTO site_settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`))
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	_, now := s.timestamp()
	for k, v := range settings {
		if _, err := stmt.ExecContext(ctx, k, v, now); err != nil {
			return fmt.Errorf("upsert setting %s: %w", k, err)
		}
	}

	return tx.Commit()
}

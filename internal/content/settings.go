// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"encoding/json"
	"strings"

	"folio/internal/models"
	"folio/internal/settings"
)

// PublicSettings returns aboutMe, portfolio and contact with defaults.
func (s *Service) PublicSettings(ctx context.Context) (*settings.Public, error) {
	return s.settings.Public(ctx)
}

// RenderedSettings returns the markdown settings as HTML.
func (s *Service) RenderedSettings(ctx context.Context) (*settings.Rendered, error) {
	return s.settings.Rendered(ctx)
}

// Setting returns one stored setting. Known keys that were never written
// resolve to their default value.
func (s *Service) Setting(ctx context.Context, key string) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	row, err := s.settings.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if row != nil {
		return row, nil
	}
	if v, ok := settings.Default(key); ok {
		return &models.Setting{Key: key, Value: v}, nil
	}
	return nil, &NotFoundError{Resource: "Setting", Key: key}
}

// reservedSettingKey is routed to RenderedSettings, so a row stored under
// it could never be read back.
const reservedSettingKey = "rendered"

// UpdateSetting upserts key with value, which arrives as raw request JSON.
// A JSON string is stored unquoted; anything else, null included, is
// stored as JSON text.
func (s *Service) UpdateSetting(ctx context.Context, key string, value json.RawMessage) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, invalid("Key is required")
	}
	if key == reservedSettingKey {
		return nil, invalid("Key %q is reserved", key)
	}
	if len(value) == 0 {
		return nil, invalid("Value is required")
	}
	if !json.Valid(value) {
		return nil, invalid("Value must be valid JSON")
	}
	return s.settings.Set(ctx, key, value)
}

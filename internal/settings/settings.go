// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package settings is the typed layer over the key/value settings table.
// Values are always stored as strings; structured values are JSON-encoded
// on write and decoded on read.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"folio/internal/markdown"
	"folio/internal/models"
)

// Defaults used when a known key has never been written.
const (
	DefaultAboutMe   = "Welcome to my portfolio. I create amazing video content and designs."
	DefaultPortfolio = "Here are some of my best works and projects."
	DefaultContact   = "[]"
)

// Default returns the built-in value for a known key.
func Default(key string) (string, bool) {
	switch key {
	case models.SettingAboutMe:
		return DefaultAboutMe, true
	case models.SettingPortfolio:
		return DefaultPortfolio, true
	case models.SettingContact:
		return DefaultContact, true
	}
	return "", false
}

// Repository persists raw setting rows.
type Repository interface {
	All(ctx context.Context) (models.SiteSettings, error)
	Get(ctx context.Context, key string) (*models.Setting, error) // nil if absent
	Set(ctx context.Context, key, value string) (*models.Setting, error)
}

// Store reads and writes settings through a Repository.
type Store struct {
	repo Repository
}

// NewStore returns a Store backed by repo.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Public is the settings payload served to the site.
type Public struct {
	AboutMe   string               `json:"aboutMe"`
	Portfolio string               `json:"portfolio"`
	Contact   []models.ContactLink `json:"contact"`
}

// Rendered carries the markdown settings converted to HTML.
type Rendered struct {
	AboutMe   string `json:"aboutMe"`
	Portfolio string `json:"portfolio"`
}

// Get returns the raw stored string for key, or fallback if the key is
// absent or empty.
func (s *Store) Get(ctx context.Context, key, fallback string) (string, error) {
	row, err := s.repo.Get(ctx, key)
	if err != nil {
		return fallback, fmt.Errorf("get setting %s: %w", key, err)
	}
	if row == nil || row.Value == "" {
		return fallback, nil
	}
	return row.Value, nil
}

// Lookup returns the stored row for key, or nil when it does not exist.
func (s *Store) Lookup(ctx context.Context, key string) (*models.Setting, error) {
	row, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}
	return row, nil
}

// Set encodes value with Encode and upserts it under key.
func (s *Store) Set(ctx context.Context, key string, value any) (*models.Setting, error) {
	encoded, err := Encode(value)
	if err != nil {
		return nil, err
	}
	row, err := s.repo.Set(ctx, key, encoded)
	if err != nil {
		return nil, fmt.Errorf("set setting %s: %w", key, err)
	}
	return row, nil
}

// Public loads the known settings with defaults applied and the contact
// list normalized to its current shape.
func (s *Store) Public(ctx context.Context) (*Public, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &Public{
		AboutMe:   all.Get(models.SettingAboutMe, DefaultAboutMe),
		Portfolio: all.Get(models.SettingPortfolio, DefaultPortfolio),
		Contact:   NormalizeContact([]byte(all.Get(models.SettingContact, DefaultContact))),
	}, nil
}

// Rendered converts the aboutMe and portfolio markdown into HTML.
func (s *Store) Rendered(ctx context.Context) (*Rendered, error) {
	aboutMD, err := s.Get(ctx, models.SettingAboutMe, DefaultAboutMe)
	if err != nil {
		return nil, err
	}
	portfolioMD, err := s.Get(ctx, models.SettingPortfolio, DefaultPortfolio)
	if err != nil {
		return nil, err
	}
	about, err := markdown.ToHTML(aboutMD)
	if err != nil {
		return nil, fmt.Errorf("render aboutMe: %w", err)
	}
	portfolio, err := markdown.ToHTML(portfolioMD)
	if err != nil {
		return nil, fmt.Errorf("render portfolio: %w", err)
	}
	return &Rendered{AboutMe: about, Portfolio: portfolio}, nil
}

// Encode turns a setting value into its stored string form. Plain strings
// are kept verbatim, a json.RawMessage holding a JSON string is unquoted,
// and everything else is JSON-encoded.
func Encode(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.RawMessage:
		return encodeRaw(v)
	case nil:
		return "null", nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode setting: %w", err)
	}
	return string(b), nil
}

// encodeRaw handles values that arrive as undecoded request JSON.
func encodeRaw(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "null", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("encode setting: %w", err)
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("encode setting: %w", err)
	}
	return buf.String(), nil
}

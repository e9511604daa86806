// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content is the single entry point for reading and writing
// portfolio content. It validates input, classifies failures into the
// error taxonomy in errors.go and delegates persistence to injected
// repositories.
package content

import (
	"strings"

	"folio/internal/models"
	"folio/internal/settings"
)

// Deps are the collaborators of a Service. Resolver may be nil.
type Deps struct {
	Categories CategoryRepository
	Videos     VideoRepository
	Portfolio  PortfolioRepository
	Settings   SettingRepository
	Users      UserRepository
	Resolver   MetadataResolver
}

// Service implements every content operation.
type Service struct {
	categories CategoryRepository
	videos     VideoRepository
	portfolio  PortfolioRepository
	settings   *settings.Store
	users      UserRepository
	resolver   MetadataResolver
}

// NewService wires a Service from its dependencies.
func NewService(d Deps) *Service {
	return &Service{
		categories: d.Categories,
		videos:     d.Videos,
		portfolio:  d.Portfolio,
		settings:   settings.NewStore(d.Settings),
		users:      d.Users,
		resolver:   d.Resolver,
	}
}

// Settings exposes the typed settings store.
func (s *Service) Settings() *settings.Store {
	return s.settings
}

// nonBlank returns a trimmed copy of p, or nil when p is nil or blank.
func nonBlank(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// nonBlankField applies nonBlank to a patch field: a present blank value
// clears the column, as it does on create.
func nonBlankField(f models.Field[string]) models.Field[string] {
	if !f.Set {
		return f
	}
	if v := nonBlank(f.Value); v != nil {
		return models.Set(*v)
	}
	return models.Null[string]()
}

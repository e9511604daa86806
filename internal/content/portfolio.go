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

	"folio/internal/category"
	"folio/internal/models"
)

// PortfolioInput is the payload for creating a portfolio item.
type PortfolioInput struct {
	Type        models.PortfolioType
	URL         string
	Title       *string
	Description *string
	Category    *string
}

// PortfolioItems returns items newest first. A non-empty filter other than
// "all" restricts the list to items whose category equals it exactly.
func (s *Service) PortfolioItems(ctx context.Context, filter string) ([]models.PortfolioItem, error) {
	filter = category.Normalize(filter)

	var (
		items []models.PortfolioItem
		err   error
	)
	if filter == "" || category.IsReserved(filter) {
		items, err = s.portfolio.List(ctx)
	} else {
		items, err = s.portfolio.ListByCategory(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	return items, nil
}

// PortfolioItem returns one item by id.
func (s *Service) PortfolioItem(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	item, err := s.portfolio.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find portfolio item: %w", err)
	}
	if item == nil {
		return nil, &NotFoundError{Resource: "Portfolio item", Key: id.String()}
	}
	return item, nil
}

// CreatePortfolioItem validates and stores a new item.
func (s *Service) CreatePortfolioItem(ctx context.Context, in PortfolioInput) (*models.PortfolioItem, error) {
	url := strings.TrimSpace(in.URL)
	if url == "" || in.Type == "" {
		return nil, invalid("URL and type are required")
	}
	if !in.Type.Valid() {
		return nil, invalid("Type must be %q or %q", models.PortfolioTypeImage, models.PortfolioTypeVideo)
	}

	item := &models.PortfolioItem{
		Type:        in.Type,
		URL:         url,
		Title:       nonBlank(in.Title),
		Description: nonBlank(in.Description),
		Category:    nonBlank(in.Category),
	}
	if err := s.portfolio.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}
	return item, nil
}

// UpdatePortfolioItem applies a partial update. An explicit null category
// clears it; an omitted one is left unchanged.
func (s *Service) UpdatePortfolioItem(ctx context.Context, id uuid.UUID, patch models.PortfolioPatch) (*models.PortfolioItem, error) {
	if patch.Type.IsNull() {
		return nil, invalid("Type is required")
	}
	if patch.Type.Set && !patch.Type.Value.Valid() {
		return nil, invalid("Type must be %q or %q", models.PortfolioTypeImage, models.PortfolioTypeVideo)
	}
	if patch.URL.Set {
		if patch.URL.IsNull() || strings.TrimSpace(*patch.URL.Value) == "" {
			return nil, invalid("URL is required")
		}
		patch.URL = models.Set(strings.TrimSpace(*patch.URL.Value))
	}
	patch.Title = nonBlankField(patch.Title)
	patch.Description = nonBlankField(patch.Description)
	patch.Category = nonBlankField(patch.Category)
	if patch.Empty() {
		return s.PortfolioItem(ctx, id)
	}

	item, err := s.portfolio.Update(ctx, id, patch)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Resource: "Portfolio item", Key: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	return item, nil
}

// DeletePortfolioItem removes an item.
func (s *Service) DeletePortfolioItem(ctx context.Context, id uuid.UUID) error {
	err := s.portfolio.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Resource: "Portfolio item", Key: id.String()}
	}
	if err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	return nil
}

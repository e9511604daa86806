// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/category"
	"folio/internal/models"
)

// Categories returns every category ordered by name.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// CategoryNames returns every category name ordered ascending.
func (s *Service) CategoryNames(ctx context.Context) ([]string, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names, nil
}

// CategoryTree returns the two-level navigation derived from all names.
func (s *Service) CategoryTree(ctx context.Context) ([]category.NavNode, error) {
	names, err := s.CategoryNames(ctx)
	if err != nil {
		return nil, err
	}
	return category.BuildNavigation(names), nil
}

// CreateCategory validates and stores a new category.
func (s *Service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = category.Normalize(name)
	if err := category.Validate(name); err != nil {
		return nil, categoryError(err)
	}

	exists, err := s.categories.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if err := category.ValidateCreate(name, exists); err != nil {
		return nil, categoryError(err)
	}

	c, err := s.categories.Create(ctx, name)
	if errors.Is(err, ErrDuplicate) {
		return nil, categoryError(category.ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category. Portfolio items referring to it keep
// their dangling name.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	name = category.Normalize(name)
	if err := category.ValidateDelete(name); err != nil {
		if errors.Is(err, category.ErrReservedName) {
			return invalid("Cannot delete the %q category", models.CategoryAll)
		}
		return categoryError(err)
	}

	err := s.categories.Delete(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Resource: "Category", Key: name}
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// categoryError maps category path errors onto the taxonomy.
func categoryError(err error) error {
	switch {
	case errors.Is(err, category.ErrEmptyName):
		return invalid("Category name is required")
	case errors.Is(err, category.ErrEmptySegment):
		return invalid("Category name has an empty segment")
	case errors.Is(err, category.ErrReservedName):
		return &ConflictError{Msg: "Category name is reserved"}
	case errors.Is(err, category.ErrDuplicate):
		return &ConflictError{Msg: "Category already exists"}
	}
	return err
}

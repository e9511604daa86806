// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"folio/internal/content"
	"folio/internal/database"
	"folio/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	conn
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB, d database.Dialect) *CategoryStore {
	return &CategoryStore{conn: newConn(db, d)}
}

const categoryColumns = `name, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	if err := scanner.Scan(&c.Name, ts(&c.CreatedAt), ts(&c.UpdatedAt)); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Exists reports whether a category with name exists.
func (s *CategoryStore) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM categories WHERE name = ?`, name).Scan(&n); err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}
	return n > 0, nil
}

// Create inserts a category. A duplicate name yields content.ErrDuplicate.
func (s *CategoryStore) Create(ctx context.Context, name string) (*models.Category, error) {
	_, now := s.timestamp()
	c, err := scanCategory(s.queryRow(ctx, `
		INSERT INTO categories (name, created_at, updated_at)
		VALUES (?, ?, ?)
		RETURNING `+categoryColumns,
		name, now, now,
	))
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create category %s: %w", name, content.ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Delete removes a category by name.
func (s *CategoryStore) Delete(ctx context.Context, name string) error {
	res, err := s.exec(ctx, `DELETE FROM categories WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return affected(res, content.ErrNotFound)
}

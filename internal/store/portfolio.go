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

// PortfolioStore manages portfolio items in the database.
type PortfolioStore struct {
	conn
}

// NewPortfolioStore returns a new PortfolioStore.
func NewPortfolioStore(db *sql.DB, d database.Dialect) *PortfolioStore {
	return &PortfolioStore{conn: newConn(db, d)}
}

const portfolioColumns = `id, type, url, title, description, category, created_at, updated_at`

func scanPortfolioItem(scanner interface{ Scan(...any) error }) (*models.PortfolioItem, error) {
	var p models.PortfolioItem
	err := scanner.Scan(
		&p.ID, &p.Type, &p.URL, &p.Title, &p.Description, &p.Category,
		ts(&p.CreatedAt), ts(&p.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PortfolioStore) list(ctx context.Context, where string, args ...any) ([]models.PortfolioItem, error) {
	rows, err := s.query(ctx,
		`SELECT `+portfolioColumns+` FROM portfolio_items `+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	defer rows.Close()

	items := []models.PortfolioItem{}
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan portfolio item: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// List returns all items, newest first.
func (s *PortfolioStore) List(ctx context.Context) ([]models.PortfolioItem, error) {
	return s.list(ctx, "")
}

// ListByCategory returns items whose category equals name exactly.
func (s *PortfolioStore) ListByCategory(ctx context.Context, name string) ([]models.PortfolioItem, error) {
	return s.list(ctx, "WHERE category = ?", name)
}

// FindByID returns an item, or nil if it does not exist.
func (s *PortfolioStore) FindByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	p, err := scanPortfolioItem(s.queryRow(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find portfolio item: %w", err)
	}
	return p, nil
}

// Create inserts item, assigning its id and timestamps.
func (s *PortfolioStore) Create(ctx context.Context, item *models.PortfolioItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	t, now := s.timestamp()

	_, err := s.exec(ctx, `
		INSERT INTO portfolio_items (id, type, url, title, description, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, string(item.Type), item.URL, item.Title, item.Description, item.Category, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert portfolio item: %w", err)
	}
	item.CreatedAt, item.UpdatedAt = t, t
	return nil
}

// Update applies the set fields of patch and returns the updated row.
func (s *PortfolioStore) Update(ctx context.Context, id uuid.UUID, patch models.PortfolioPatch) (*models.PortfolioItem, error) {
	var set setClause
	if patch.Type.Set {
		set.add("type", fieldArg(patch.Type.Value))
	}
	if patch.URL.Set {
		set.add("url", fieldArg(patch.URL.Value))
	}
	if patch.Title.Set {
		set.add("title", fieldArg(patch.Title.Value))
	}
	if patch.Description.Set {
		set.add("description", fieldArg(patch.Description.Value))
	}
	if patch.Category.Set {
		set.add("category", fieldArg(patch.Category.Value))
	}
	if set.empty() {
		p, err := s.FindByID(ctx, id)
		if err == nil && p == nil {
			err = content.ErrNotFound
		}
		return p, err
	}
	_, now := s.timestamp()
	set.add("updated_at", now)

	args := append(set.args, id)
	p, err := scanPortfolioItem(s.queryRow(ctx,
		`UPDATE portfolio_items SET `+set.String()+` WHERE id = ? RETURNING `+portfolioColumns, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	return p, nil
}

// Delete removes an item by id.
func (s *PortfolioStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.exec(ctx, `DELETE FROM portfolio_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	return affected(res, content.ErrNotFound)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/content"
	"folio/internal/database"
	"folio/internal/models"
)

func newPortfolioStore(t *testing.T) *PortfolioStore {
	s := NewPortfolioStore(testDB(t), database.SQLite)
	s.now = stepClock()
	return s
}

func TestPortfolioStoreListByCategory(t *testing.T) {
	s := newPortfolioStore(t)
	ctx := context.Background()

	items := []*models.PortfolioItem{
		{Type: models.PortfolioTypeImage, URL: "/a.png", Category: strPtr("Gallery")},
		{Type: models.PortfolioTypeVideo, URL: "https://youtu.be/x", Category: strPtr("Gallery/Sketches")},
		{Type: models.PortfolioTypeImage, URL: "/c.png"},
		{Type: models.PortfolioTypeImage, URL: "/d.png", Category: strPtr("Gallery")},
	}
	for _, it := range items {
		require.NoError(t, s.Create(ctx, it))
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, items[3].ID, all[0].ID)

	gallery, err := s.ListByCategory(ctx, "Gallery")
	require.NoError(t, err)
	require.Len(t, gallery, 2, "exact match only")
	assert.Equal(t, "/d.png", gallery[0].URL)
	assert.Equal(t, "/a.png", gallery[1].URL)

	none, err := s.ListByCategory(ctx, "Missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPortfolioStoreUpdateCategory(t *testing.T) {
	s := newPortfolioStore(t)
	ctx := context.Background()

	it := &models.PortfolioItem{Type: models.PortfolioTypeImage, URL: "/a.png", Title: strPtr("A"), Category: strPtr("Gallery")}
	require.NoError(t, s.Create(ctx, it))

	got, err := s.Update(ctx, it.ID, models.PortfolioPatch{Title: models.Set("B")})
	require.NoError(t, err)
	require.NotNil(t, got.Category, "omitted category is preserved")
	assert.Equal(t, "Gallery", *got.Category)
	assert.Equal(t, "B", *got.Title)

	got, err = s.Update(ctx, it.ID, models.PortfolioPatch{Category: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.Category, "null clears category")

	got, err = s.Update(ctx, it.ID, models.PortfolioPatch{Type: models.Set(models.PortfolioTypeVideo)})
	require.NoError(t, err)
	assert.Equal(t, models.PortfolioTypeVideo, got.Type)

	_, err = s.Update(ctx, uuid.New(), models.PortfolioPatch{Title: models.Set("x")})
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestPortfolioStoreDelete(t *testing.T) {
	s := newPortfolioStore(t)
	ctx := context.Background()

	it := &models.PortfolioItem{Type: models.PortfolioTypeImage, URL: "/a.png"}
	require.NoError(t, s.Create(ctx, it))
	require.NoError(t, s.Delete(ctx, it.ID))

	got, err := s.FindByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, s.Delete(ctx, it.ID), content.ErrNotFound)
}

func TestPortfolioStoreRejectsUnknownType(t *testing.T) {
	s := newPortfolioStore(t)
	err := s.Create(context.Background(), &models.PortfolioItem{Type: "gif", URL: "/a.gif"})
	assert.Error(t, err, "CHECK constraint guards the type column")
}

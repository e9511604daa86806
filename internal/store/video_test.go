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

func newVideoStore(t *testing.T) *VideoStore {
	s := NewVideoStore(testDB(t), database.SQLite)
	s.now = stepClock()
	return s
}

func TestVideoStoreCreateAndList(t *testing.T) {
	s := newVideoStore(t)
	ctx := context.Background()

	first := &models.Video{YoutubeURL: "https://youtu.be/aaaaaaaaaaa", Title: strPtr("First")}
	second := &models.Video{YoutubeURL: "https://youtu.be/bbbbbbbbbbb"}
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, models.VideoTypeVideo, second.Type)

	videos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, second.ID, videos[0].ID, "newest first")
	assert.Equal(t, first.ID, videos[1].ID)
	require.NotNil(t, videos[1].Title)
	assert.Equal(t, "First", *videos[1].Title)
	assert.Nil(t, videos[0].Title)
	assert.True(t, first.CreatedAt.Equal(videos[1].CreatedAt))
}

func TestVideoStoreFindByID(t *testing.T) {
	s := newVideoStore(t)
	ctx := context.Background()

	v, err := s.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, v)

	created := &models.Video{YoutubeURL: "https://youtu.be/aaaaaaaaaaa"}
	require.NoError(t, s.Create(ctx, created))
	v, err = s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, created.YoutubeURL, v.YoutubeURL)
}

func TestVideoStoreUpdate(t *testing.T) {
	s := newVideoStore(t)
	ctx := context.Background()

	v := &models.Video{YoutubeURL: "https://youtu.be/aaaaaaaaaaa", Title: strPtr("T"), Subtitle: strPtr("S")}
	require.NoError(t, s.Create(ctx, v))

	got, err := s.Update(ctx, v.ID, models.VideoPatch{Title: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.Title, "null clears")
	require.NotNil(t, got.Subtitle, "omitted is preserved")
	assert.Equal(t, "S", *got.Subtitle)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	got, err = s.Update(ctx, v.ID, models.VideoPatch{YoutubeURL: models.Set("https://youtu.be/ccccccccccc")})
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/ccccccccccc", got.YoutubeURL)

	_, err = s.Update(ctx, uuid.New(), models.VideoPatch{Title: models.Set("x")})
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestVideoStoreDelete(t *testing.T) {
	s := newVideoStore(t)
	ctx := context.Background()

	v := &models.Video{YoutubeURL: "https://youtu.be/aaaaaaaaaaa"}
	require.NoError(t, s.Create(ctx, v))
	require.NoError(t, s.Delete(ctx, v.ID))
	assert.ErrorIs(t, s.Delete(ctx, v.ID), content.ErrNotFound)
}

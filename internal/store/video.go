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

// VideoStore manages videos in the database.
type VideoStore struct {
	conn
}

// NewVideoStore returns a new VideoStore.
func NewVideoStore(db *sql.DB, d database.Dialect) *VideoStore {
	return &VideoStore{conn: newConn(db, d)}
}

const videoColumns = `id, youtube_url, title, subtitle, type, created_at, updated_at`

func scanVideo(scanner interface{ Scan(...any) error }) (*models.Video, error) {
	var v models.Video
	err := scanner.Scan(
		&v.ID, &v.YoutubeURL, &v.Title, &v.Subtitle, &v.Type,
		ts(&v.CreatedAt), ts(&v.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns all videos, newest first.
func (s *VideoStore) List(ctx context.Context) ([]models.Video, error) {
	rows, err := s.query(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	items := []models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

// FindByID returns a video, or nil if it does not exist.
func (s *VideoStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	v, err := scanVideo(s.queryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find video: %w", err)
	}
	return v, nil
}

// Create inserts v, assigning its id and timestamps.
func (s *VideoStore) Create(ctx context.Context, v *models.Video) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Type == "" {
		v.Type = models.VideoTypeVideo
	}
	t, now := s.timestamp()

	_, err := s.exec(ctx, `
		INSERT INTO videos (id, youtube_url, title, subtitle, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.YoutubeURL, v.Title, v.Subtitle, string(v.Type), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	v.CreatedAt, v.UpdatedAt = t, t
	return nil
}

// Update applies the set fields of patch and returns the updated row.
func (s *VideoStore) Update(ctx context.Context, id uuid.UUID, patch models.VideoPatch) (*models.Video, error) {
	var set setClause
	if patch.YoutubeURL.Set {
		set.add("youtube_url", fieldArg(patch.YoutubeURL.Value))
	}
	if patch.Title.Set {
		set.add("title", fieldArg(patch.Title.Value))
	}
	if patch.Subtitle.Set {
		set.add("subtitle", fieldArg(patch.Subtitle.Value))
	}
	if set.empty() {
		v, err := s.FindByID(ctx, id)
		if err == nil && v == nil {
			err = content.ErrNotFound
		}
		return v, err
	}
	_, now := s.timestamp()
	set.add("updated_at", now)

	args := append(set.args, id)
	v, err := scanVideo(s.queryRow(ctx,
		`UPDATE videos SET `+set.String()+` WHERE id = ? RETURNING `+videoColumns, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	return v, nil
}

// Delete removes a video by id.
func (s *VideoStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.exec(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return affected(res, content.ErrNotFound)
}

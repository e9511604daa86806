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

	"folio/internal/models"
	"folio/internal/youtube"
)

// VideoInput is the payload for creating a video.
type VideoInput struct {
	YoutubeURL string
	Title      *string
	Subtitle   *string
}

// Videos returns every video, newest first.
func (s *Service) Videos(ctx context.Context) ([]models.Video, error) {
	videos, err := s.videos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// Video returns one video by id.
func (s *Service) Video(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find video: %w", err)
	}
	if v == nil {
		return nil, &NotFoundError{Resource: "Video", Key: id.String()}
	}
	return v, nil
}

// CreateVideo stores a new video. Blank title or subtitle are filled from
// the video's public metadata when it can be fetched; a failed lookup
// leaves them empty and does not fail the write.
func (s *Service) CreateVideo(ctx context.Context, in VideoInput) (*models.Video, error) {
	url := strings.TrimSpace(in.YoutubeURL)
	if url == "" {
		return nil, invalid("YouTube URL is required")
	}

	v := &models.Video{
		YoutubeURL: url,
		Title:      nonBlank(in.Title),
		Subtitle:   nonBlank(in.Subtitle),
		Type:       models.VideoTypeVideo,
	}
	if v.Title == nil || v.Subtitle == nil {
		s.fillMetadata(ctx, v)
	}

	if err := s.videos.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return v, nil
}

// fillMetadata copies title and author into the blank fields of v.
func (s *Service) fillMetadata(ctx context.Context, v *models.Video) {
	if s.resolver == nil {
		return
	}
	id := youtube.ExtractID(v.YoutubeURL)
	if id == "" {
		return
	}
	meta := s.resolver.Resolve(ctx, id)
	if meta == nil {
		return
	}
	if v.Title == nil {
		v.Title = nonBlank(&meta.Title)
	}
	if v.Subtitle == nil {
		v.Subtitle = nonBlank(&meta.Author)
	}
}

// UpdateVideo applies a partial update. Metadata is never re-fetched.
func (s *Service) UpdateVideo(ctx context.Context, id uuid.UUID, patch models.VideoPatch) (*models.Video, error) {
	if patch.YoutubeURL.Set {
		if patch.YoutubeURL.IsNull() || strings.TrimSpace(*patch.YoutubeURL.Value) == "" {
			return nil, invalid("YouTube URL is required")
		}
		patch.YoutubeURL = models.Set(strings.TrimSpace(*patch.YoutubeURL.Value))
	}
	patch.Title = nonBlankField(patch.Title)
	patch.Subtitle = nonBlankField(patch.Subtitle)
	if patch.Empty() {
		return s.Video(ctx, id)
	}

	v, err := s.videos.Update(ctx, id, patch)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Resource: "Video", Key: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	return v, nil
}

// DeleteVideo removes a video.
func (s *Service) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	err := s.videos.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Resource: "Video", Key: id.String()}
	}
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"

	"github.com/google/uuid"

	"folio/internal/models"
	"folio/internal/settings"
	"folio/internal/youtube"
)

// CategoryRepository persists category names.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error) // name ascending
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) (*models.Category, error) // ErrDuplicate
	Delete(ctx context.Context, name string) error                     // ErrNotFound
}

// VideoRepository persists videos.
type VideoRepository interface {
	List(ctx context.Context) ([]models.Video, error) // newest first
	FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Create(ctx context.Context, v *models.Video) error
	Update(ctx context.Context, id uuid.UUID, patch models.VideoPatch) (*models.Video, error) // ErrNotFound
	Delete(ctx context.Context, id uuid.UUID) error                                          // ErrNotFound
}

// PortfolioRepository persists portfolio items.
type PortfolioRepository interface {
	List(ctx context.Context) ([]models.PortfolioItem, error) // newest first
	ListByCategory(ctx context.Context, name string) ([]models.PortfolioItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error)
	Create(ctx context.Context, item *models.PortfolioItem) error
	Update(ctx context.Context, id uuid.UUID, patch models.PortfolioPatch) (*models.PortfolioItem, error) // ErrNotFound
	Delete(ctx context.Context, id uuid.UUID) error                                                      // ErrNotFound
}

// SettingRepository persists key/value settings.
type SettingRepository = settings.Repository

// UserRepository persists admin accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetTOTPSecret(ctx context.Context, id uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, id uuid.UUID) error
	ResetTOTP(ctx context.Context, id uuid.UUID) error
}

// MetadataResolver looks up video metadata. *youtube.Resolver satisfies it.
type MetadataResolver interface {
	Resolve(ctx context.Context, id string) *youtube.Metadata
}

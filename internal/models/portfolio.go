// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioType is the media kind of a portfolio item.
type PortfolioType string

const (
	PortfolioTypeImage PortfolioType = "image"
	PortfolioTypeVideo PortfolioType = "video"
)

// Valid reports whether t is one of the known portfolio types.
func (t PortfolioType) Valid() bool {
	return t == PortfolioTypeImage || t == PortfolioTypeVideo
}

// PortfolioItem is a single image or video in the portfolio. Category holds
// a category name but is not a foreign key; a dangling name is tolerated.
type PortfolioItem struct {
	ID          uuid.UUID     `json:"id"`
	Type        PortfolioType `json:"type"`
	URL         string        `json:"url"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Category    *string       `json:"category"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// PortfolioPatch is a partial update of a portfolio item.
type PortfolioPatch struct {
	Type        Field[PortfolioType] `json:"type"`
	URL         Field[string]        `json:"url"`
	Title       Field[string]        `json:"title"`
	Description Field[string]        `json:"description"`
	Category    Field[string]        `json:"category"`
}

// Empty reports whether the patch carries no fields at all.
func (p PortfolioPatch) Empty() bool {
	return !p.Type.Set && !p.URL.Set && !p.Title.Set && !p.Description.Set && !p.Category.Set
}

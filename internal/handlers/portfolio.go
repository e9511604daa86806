// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"folio/internal/content"
	"folio/internal/models"
)

type portfolioRequest struct {
	Type        string  `json:"type"`
	URL         string  `json:"url" validate:"max=2048"`
	Title       *string `json:"title" validate:"omitempty,max=300"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Category    *string `json:"category" validate:"omitempty,max=200"`
}

// ListPortfolio returns portfolio items newest first, optionally filtered
// by ?category=<name>.
func (h *Content) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.PortfolioItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		fail(w, r, err, "Failed to fetch portfolio items")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// GetPortfolioItem returns a single item.
func (h *Content) GetPortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Portfolio item")
	if !ok {
		return
	}

	item, err := h.svc.PortfolioItem(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Failed to fetch portfolio item")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// CreatePortfolioItem adds an item.
func (h *Content) CreatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err, "Failed to create portfolio item")
		return
	}

	item, err := h.svc.CreatePortfolioItem(r.Context(), content.PortfolioInput{
		Type:        models.PortfolioType(req.Type),
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		fail(w, r, err, "Failed to create portfolio item")
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdatePortfolioItem applies a partial update.
func (h *Content) UpdatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Portfolio item")
	if !ok {
		return
	}

	var patch models.PortfolioPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		fail(w, r, err, "Failed to update portfolio item")
		return
	}
	for _, c := range []struct {
		f     models.Field[string]
		name  string
		limit int
	}{
		{patch.URL, "url", maxURLLen},
		{patch.Title, "title", maxTitleLen},
		{patch.Description, "description", maxDescriptionLen},
		{patch.Category, "category", maxCategoryLen},
	} {
		if err := checkPatchLen(c.f, c.name, c.limit); err != nil {
			fail(w, r, err, "Failed to update portfolio item")
			return
		}
	}

	item, err := h.svc.UpdatePortfolioItem(r.Context(), id, patch)
	if err != nil {
		fail(w, r, err, "Failed to update portfolio item")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeletePortfolioItem removes an item. When the item's URL points at our
// object storage the stored file is removed too (best-effort).
func (h *Content) DeletePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Portfolio item")
	if !ok {
		return
	}

	ctx := r.Context()
	item, err := h.svc.PortfolioItem(ctx, id)
	if err != nil {
		fail(w, r, err, "Failed to delete portfolio item")
		return
	}

	if err := h.svc.DeletePortfolioItem(ctx, id); err != nil {
		fail(w, r, err, "Failed to delete portfolio item")
		return
	}
	h.removeStoredFile(ctx, item.URL)

	respondMessage(w, "Portfolio item deleted successfully")
}

func (h *Content) removeStoredFile(ctx context.Context, rawURL string) {
	if h.files == nil {
		return
	}
	key, ok := h.files.KeyFromURL(rawURL)
	if !ok {
		return
	}
	if err := h.files.Delete(ctx, key); err != nil {
		slog.Warn("s3 delete failed", "error", err, "key", key)
	}
}

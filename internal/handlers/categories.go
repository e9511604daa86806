// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Name string `json:"name" validate:"max=200"`
}

// ListCategories returns every category name in ascending order.
func (h *Content) ListCategories(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.CategoryNames(r.Context())
	if err != nil {
		fail(w, r, err, "Failed to fetch categories")
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// CategoryTree returns the two-level portfolio navigation.
func (h *Content) CategoryTree(w http.ResponseWriter, r *http.Request) {
	nav, err := h.svc.CategoryTree(r.Context())
	if err != nil {
		fail(w, r, err, "Failed to fetch categories")
		return
	}
	respondJSON(w, http.StatusOK, nav)
}

// CreateCategory adds a category.
func (h *Content) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err, "Failed to create category")
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		fail(w, r, err, "Failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// DeleteCategory removes a category. The name is taken from the rest of
// the path so nested names work both raw (/categories/a/b) and escaped
// (/categories/a%2Fb).
func (h *Content) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category name")
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), name); err != nil {
		fail(w, r, err, "Failed to delete category")
		return
	}
	respondMessage(w, "Category deleted successfully")
}

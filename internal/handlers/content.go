// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/content"
)

// Content groups the category, video, portfolio and settings handlers.
type Content struct {
	svc   *content.Service
	files ObjectStore // nil when object storage is not configured
}

// NewContent creates a new Content handler group.
func NewContent(svc *content.Service, files ObjectStore) *Content {
	return &Content{svc: svc, files: files}
}

// idParam parses the {id} URL parameter. Malformed ids cannot match any
// row, so they are reported as not found.
func idParam(w http.ResponseWriter, r *http.Request, resource string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusNotFound, (&content.NotFoundError{Resource: resource, Key: raw}).Error())
		return uuid.Nil, false
	}
	return id, true
}

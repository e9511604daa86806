// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type settingRequest struct {
	Key   string          `json:"key" validate:"max=100"`
	Value json.RawMessage `json:"value"`
}

// GetSettings returns aboutMe, portfolio and contact with defaults applied
// and legacy contact payloads normalized.
func (h *Content) GetSettings(w http.ResponseWriter, r *http.Request) {
	pub, err := h.svc.PublicSettings(r.Context())
	if err != nil {
		fail(w, r, err, "Failed to fetch settings")
		return
	}
	respondJSON(w, http.StatusOK, pub)
}

// RenderedSettings returns the markdown settings converted to HTML.
func (h *Content) RenderedSettings(w http.ResponseWriter, r *http.Request) {
	rendered, err := h.svc.RenderedSettings(r.Context())
	if err != nil {
		fail(w, r, err, "Failed to fetch settings")
		return
	}
	respondJSON(w, http.StatusOK, rendered)
}

// GetSetting returns a single setting by key.
func (h *Content) GetSetting(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Setting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		fail(w, r, err, "Failed to fetch settings")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// UpdateSetting upserts one setting. A JSON string value is stored as is;
// any other JSON value, null included, is stored as its JSON text.
func (h *Content) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err, "Failed to update settings")
		return
	}

	s, err := h.svc.UpdateSetting(r.Context(), req.Key, req.Value)
	if err != nil {
		fail(w, r, err, "Failed to update settings")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

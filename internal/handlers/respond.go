// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API. Handler groups are plain
// structs built with NewX constructors and mounted by the router.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"folio/internal/content"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

// respondError writes the {"error": msg} envelope.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondMessage writes a {"message": msg} acknowledgement.
func respondMessage(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// fail maps a service error to a response. Classified errors carry their
// own message; anything else is logged and reported with the generic
// title so storage details never reach the client.
func fail(w http.ResponseWriter, r *http.Request, err error, title string) {
	var (
		verr *content.ValidationError
		cerr *content.ConflictError
		nerr *content.NotFoundError
		uerr *content.UnauthorizedError
	)

	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Msg)
	case errors.As(err, &cerr):
		respondError(w, http.StatusBadRequest, cerr.Msg)
	case errors.As(err, &nerr):
		respondError(w, http.StatusNotFound, nerr.Error())
	case errors.As(err, &uerr):
		respondError(w, http.StatusUnauthorized, uerr.Error())
	default:
		slog.Error(title, "error", err, "method", r.Method, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, title)
	}
}

// decodeJSON reads a JSON request body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &content.ValidationError{Msg: "Request body is too large"}
		}
		return &content.ValidationError{Msg: "Invalid JSON body"}
	}
	return validateStruct(dst)
}

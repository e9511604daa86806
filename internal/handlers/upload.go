// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/storage"
)

const (
	// maxUploadSize is the maximum allowed image upload size (20 MB).
	maxUploadSize = 20 << 20
)

// allowedImageTypes maps accepted MIME types to their file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectStore is the object storage used for uploads. *storage.Client
// satisfies it.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
	KeyFromURL(rawURL string) (string, bool)
}

// Upload handles portfolio image uploads.
type Upload struct {
	files ObjectStore
	now   func() time.Time
}

// NewUpload creates an Upload handler. files may be nil, in which case
// every upload is answered with 503.
func NewUpload(files ObjectStore) *Upload {
	return &Upload{files: files, now: time.Now}
}

// Image stores a multipart "file" field and returns its public URL, ready
// to be used as a portfolio item URL.
func (u *Upload) Image(w http.ResponseWriter, r *http.Request) {
	if u.files == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusBadRequest, "File too large. Maximum size is 20 MB")
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if len(data) == 0 {
		respondError(w, http.StatusBadRequest, "File is empty")
		return
	}

	// Trust the bytes, not the client's Content-Type.
	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("File type %q is not allowed", contentType))
		return
	}
	if given := strings.ToLower(filepath.Ext(header.Filename)); given == ".jpeg" && ext == ".jpg" {
		ext = given
	}

	key := storage.ObjectKey(header.Filename, ext, u.now())
	if err := u.files.Put(r.Context(), key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"url":  u.files.URL(key),
		"key":  key,
		"type": contentType,
		"size": len(data),
	})
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"folio/internal/content"
	"folio/internal/models"
	"folio/internal/youtube"
)

type videoRequest struct {
	YoutubeURL *string `json:"youtubeUrl" validate:"omitempty,max=2048"`
	Title      *string `json:"title" validate:"omitempty,max=300"`
	Subtitle   *string `json:"subtitle" validate:"omitempty,max=300"`
}

// videoView adds the fields derived from the YouTube URL.
type videoView struct {
	models.Video
	YoutubeID    string `json:"youtubeId"`
	ThumbnailURL string `json:"thumbnailUrl"`
	EmbedURL     string `json:"embedUrl"`
}

func newVideoView(v models.Video) videoView {
	id := youtube.ExtractID(v.YoutubeURL)
	return videoView{
		Video:        v,
		YoutubeID:    id,
		ThumbnailURL: youtube.ThumbnailURL(id),
		EmbedURL:     youtube.EmbedURL(id),
	}
}

// ListVideos returns all videos, newest first.
func (h *Content) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.svc.Videos(r.Context())
	if err != nil {
		fail(w, r, err, "Failed to fetch videos")
		return
	}

	views := make([]videoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, newVideoView(v))
	}
	respondJSON(w, http.StatusOK, views)
}

// GetVideo returns a single video.
func (h *Content) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Video")
	if !ok {
		return
	}

	v, err := h.svc.Video(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Failed to fetch video")
		return
	}
	respondJSON(w, http.StatusOK, newVideoView(*v))
}

// CreateVideo adds a video. Blank title and subtitle are filled from the
// YouTube oEmbed metadata when it is reachable.
func (h *Content) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err, "Failed to create video")
		return
	}

	in := content.VideoInput{Title: req.Title, Subtitle: req.Subtitle}
	if req.YoutubeURL != nil {
		in.YoutubeURL = *req.YoutubeURL
	}

	v, err := h.svc.CreateVideo(r.Context(), in)
	if err != nil {
		fail(w, r, err, "Failed to create video")
		return
	}
	respondJSON(w, http.StatusCreated, newVideoView(*v))
}

// UpdateVideo applies a partial update.
func (h *Content) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Video")
	if !ok {
		return
	}

	var patch models.VideoPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		fail(w, r, err, "Failed to update video")
		return
	}
	for _, c := range []struct {
		f     models.Field[string]
		name  string
		limit int
	}{
		{patch.YoutubeURL, "youtubeUrl", maxURLLen},
		{patch.Title, "title", maxTitleLen},
		{patch.Subtitle, "subtitle", maxTitleLen},
	} {
		if err := checkPatchLen(c.f, c.name, c.limit); err != nil {
			fail(w, r, err, "Failed to update video")
			return
		}
	}

	v, err := h.svc.UpdateVideo(r.Context(), id, patch)
	if err != nil {
		fail(w, r, err, "Failed to update video")
		return
	}
	respondJSON(w, http.StatusOK, newVideoView(*v))
}

// DeleteVideo removes a video.
func (h *Content) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Video")
	if !ok {
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), id); err != nil {
		fail(w, r, err, "Failed to delete video")
		return
	}
	respondMessage(w, "Video deleted successfully")
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is YouTube's public oEmbed endpoint.
const DefaultEndpoint = "https://www.youtube.com/oembed"

// lookupTimeout bounds a single oEmbed request.
const lookupTimeout = 5 * time.Second

// maxBody caps how much of an oEmbed response is read.
const maxBody = 1 << 20

// Metadata is the subset of an oEmbed response used to fill in videos.
type Metadata struct {
	Title  string `json:"title"`
	Author string `json:"author_name"`
}

// Cache stores encoded metadata by video id. Implementations decide the
// expiry; a miss or error is reported as ok == false.
type Cache interface {
	Get(ctx context.Context, id string) ([]byte, bool)
	Set(ctx context.Context, id string, data []byte)
}

// Resolver fetches video metadata. A nil *Resolver resolves nothing.
type Resolver struct {
	endpoint string
	client   *http.Client
	cache    Cache
}

// NewResolver creates a Resolver against endpoint (DefaultEndpoint when
// empty). cache may be nil.
func NewResolver(endpoint string, cache Cache) *Resolver {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Resolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: lookupTimeout},
		cache:    cache,
	}
}

// Resolve returns metadata for the video id, or nil on any failure. It
// never returns an error: a failed lookup must not block saving a video.
func (r *Resolver) Resolve(ctx context.Context, id string) *Metadata {
	if r == nil || id == "" {
		return nil
	}

	if r.cache != nil {
		if data, ok := r.cache.Get(ctx, id); ok {
			var m Metadata
			if err := json.Unmarshal(data, &m); err == nil {
				return &m
			}
		}
	}

	m, err := r.fetch(ctx, id)
	if err != nil {
		slog.Warn("oembed lookup failed", "video_id", id, "error", err)
		return nil
	}

	if r.cache != nil {
		if data, err := json.Marshal(m); err == nil {
			r.cache.Set(ctx, id, data)
		}
	}
	return m
}

// fetch performs the HTTP call to the oEmbed endpoint.
func (r *Resolver) fetch(ctx context.Context, id string) (*Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("url", WatchURL(id))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("oembed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, fmt.Errorf("oembed status %d", resp.StatusCode)
	}

	var m Metadata
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&m); err != nil {
		return nil, fmt.Errorf("oembed decode: %w", err)
	}
	return &m, nil
}

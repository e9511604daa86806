// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// metadataKeyPrefix is the Valkey key prefix for oEmbed lookups.
	metadataKeyPrefix = "oembed:"

	// DefaultMetadataTTL matches how often YouTube metadata is refreshed.
	DefaultMetadataTTL = time.Hour
)

// MetadataCache keeps encoded video metadata in Valkey, keyed by video id.
type MetadataCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMetadataCache creates a metadata cache backed by the given Valkey client.
func NewMetadataCache(client *redis.Client, ttl time.Duration) *MetadataCache {
	if ttl == 0 {
		ttl = DefaultMetadataTTL
	}
	return &MetadataCache{client: client, ttl: ttl}
}

// Get returns the cached bytes for id. Errors are logged and reported as a miss.
func (mc *MetadataCache) Get(ctx context.Context, id string) ([]byte, bool) {
	val, err := mc.client.Get(ctx, metadataKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("metadata cache get error", "video_id", id, "error", err)
		return nil, false
	}
	slog.Debug("metadata cache hit", "video_id", id)
	return val, true
}

// Set stores data for id with the configured TTL.
func (mc *MetadataCache) Set(ctx context.Context, id string, data []byte) {
	if err := mc.client.Set(ctx, metadataKeyPrefix+id, data, mc.ttl).Err(); err != nil {
		slog.Warn("metadata cache set error", "video_id", id, "error", err)
	}
}

// Invalidate removes the cached entry for id.
func (mc *MetadataCache) Invalidate(ctx context.Context, id string) {
	if err := mc.client.Del(ctx, metadataKeyPrefix+id).Err(); err != nil {
		slog.Warn("metadata cache invalidate error", "video_id", id, "error", err)
	}
}

// InvalidateAll removes every cached lookup by scanning for the prefix.
func (mc *MetadataCache) InvalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := mc.client.Scan(ctx, cursor, metadataKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("metadata cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := mc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("metadata cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("metadata cache cleared", "deleted", deleted)
	}
	return deleted
}

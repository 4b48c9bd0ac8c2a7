// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// list.go provides a Valkey-backed cache of the publicly visible workshop
// set. The browse endpoint re-filters this list in memory on every
// request, so caching the store read is enough; every moderation mutation
// invalidates the entry and the next read repopulates it.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tallerradar/internal/models"
)

const (
	// listKey is the Valkey key holding the visible workshop set.
	listKey = "workshops:visible"

	// DefaultListTTL bounds staleness if an invalidation is ever missed.
	DefaultListTTL = 5 * time.Minute
)

// ListCache caches the publicly visible workshop set in Valkey.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a list cache backed by the given Valkey client.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// Get retrieves the cached visible set. Returns (nil, false) on miss or
// on any error; cache failures must never break the listing.
func (lc *ListCache) Get(ctx context.Context) ([]models.Workshop, bool) {
	payload, err := lc.client.Get(ctx, listKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("list cache get error", "error", err)
		return nil, false
	}

	var out []models.Workshop
	if err := json.Unmarshal(payload, &out); err != nil {
		slog.Warn("list cache decode error", "error", err)
		return nil, false
	}
	return out, true
}

// Set stores the visible set with the configured TTL.
func (lc *ListCache) Set(ctx context.Context, workshops []models.Workshop) {
	payload, err := json.Marshal(workshops)
	if err != nil {
		slog.Warn("list cache encode error", "error", err)
		return
	}
	if err := lc.client.Set(ctx, listKey, payload, lc.ttl).Err(); err != nil {
		slog.Warn("list cache set error", "error", err)
	}
}

// Invalidate drops the cached set. Called after every workshop mutation.
func (lc *ListCache) Invalidate(ctx context.Context) {
	if err := lc.client.Del(ctx, listKey).Err(); err != nil {
		slog.Warn("list cache invalidate error", "error", err)
	}
}

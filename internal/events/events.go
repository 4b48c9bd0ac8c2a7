// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events broadcasts workshop changes over Valkey pub/sub so that
// browse and moderation clients can refresh without polling. The payload
// carries only the event kind and record id; subscribers re-read through
// the store, which keeps the feed safe to drop or replay.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// channel is the Valkey pub/sub channel for workshop change events.
const channel = "workshops:changes"

// Event kinds.
const (
	KindCreated  = "created"
	KindApproved = "approved"
	KindRejected = "rejected"
	KindDeleted  = "deleted"
)

// Event is a single workshop change notification.
type Event struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// Bus publishes and subscribes to workshop change events.
type Bus struct {
	client *redis.Client
}

// NewBus creates an event bus backed by the given Valkey client.
func NewBus(client *redis.Client) *Bus {
	return &Bus{client: client}
}

// Publish emits a change event. Failures are logged, never propagated:
// the write that triggered the event has already succeeded and listeners
// recover on their next full read.
func (b *Bus) Publish(ctx context.Context, kind string, id uuid.UUID) {
	payload, err := json.Marshal(Event{Kind: kind, ID: id.String()})
	if err != nil {
		slog.Warn("event encode error", "error", err)
		return
	}
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		slog.Warn("event publish error", "kind", kind, "error", err)
	}
}

// Subscribe opens a subscription to the change feed. The caller owns the
// returned PubSub and must Close it when done.
func (b *Bus) Subscribe(ctx context.Context) *redis.PubSub {
	return b.client.Subscribe(ctx, channel)
}

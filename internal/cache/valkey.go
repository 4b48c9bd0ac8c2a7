// Package cache provides the Valkey (Redis-compatible) client shared by
// sessions, the visible-listing cache, and the workshop change feed.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds both dialing and the startup ping. A Valkey that
// does not answer within this is treated as down.
const connectTimeout = 5 * time.Second

// ConnectValkey creates the shared client and verifies the connection
// with a ping before anything is wired on top of it.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          0,
		ClientName:  "tallerradar",
		DialTimeout: connectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"tallerradar/internal/cache"
	"tallerradar/internal/database"
	"tallerradar/internal/events"
	"tallerradar/internal/middleware"
	"tallerradar/internal/session"
	"tallerradar/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "tallerradar")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "tallerradar")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "workshops:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Valkey    *redis.Client
	Sessions  *session.Store
	Workshops *store.WorkshopStore
	Users     *store.UserStore
	Ingests   *store.IngestStore
	ListCache *cache.ListCache
	Bus       *events.Bus
	Public    *Public
	Admin     *Admin
	Auth      *Auth
	Ingest    *Ingest
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Storage is nil: image paths degrade exactly as they do
// in a deployment without S3.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	workshops := store.NewWorkshopStore(db)
	users := store.NewUserStore(db)
	ingests := store.NewIngestStore(db)
	listCache := cache.NewListCache(vk, 1*time.Minute)
	bus := events.NewBus(vk)

	return &testEnv{
		DB:        db,
		Valkey:    vk,
		Sessions:  sessions,
		Workshops: workshops,
		Users:     users,
		Ingests:   ingests,
		ListCache: listCache,
		Bus:       bus,
		Public:    NewPublic(workshops, listCache, bus, nil),
		Admin:     NewAdmin(workshops, ingests, listCache, bus, nil),
		Auth:      NewAuth(sessions, users),
		Ingest:    NewIngest(ingests, ""),
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// cleanWorkshops removes test workshops by name.
func cleanWorkshops(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		db.Exec("DELETE FROM workshops WHERE name = $1", n)
	}
}

// cleanScraped removes test scraped posts by link.
func cleanScraped(t *testing.T, db *sql.DB, links ...string) {
	t.Helper()
	for _, l := range links {
		db.Exec("DELETE FROM scraped_posts WHERE link = $1", l)
	}
}

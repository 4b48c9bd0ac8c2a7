// Cache integration tests require a reachable Valkey instance and are
// skipped otherwise.
package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tallerradar/internal/models"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		client.Del(context.Background(), listKey)
		client.Close()
	})

	return client
}

func TestListCacheRoundTrip(t *testing.T) {
	lc := NewListCache(testClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := lc.Get(ctx); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	workshops := []models.Workshop{
		{ID: uuid.New(), Name: "Taller uno", Status: models.StatusApproved, Approved: true},
		{ID: uuid.New(), Name: "Taller dos", Status: models.StatusApproved, Approved: true},
	}
	lc.Set(ctx, workshops)

	got, ok := lc.Get(ctx)
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if len(got) != 2 || got[0].Name != "Taller uno" {
		t.Errorf("round trip: got %+v", got)
	}

	lc.Invalidate(ctx)
	if _, ok := lc.Get(ctx); ok {
		t.Error("expected a miss after Invalidate")
	}
}

func TestListCacheEmptySetIsCacheable(t *testing.T) {
	lc := NewListCache(testClient(t), time.Minute)
	ctx := context.Background()

	lc.Set(ctx, []models.Workshop{})
	got, ok := lc.Get(ctx)
	if !ok {
		t.Fatal("an empty visible set should still be a hit")
	}
	if len(got) != 0 {
		t.Errorf("got %d items, want 0", len(got))
	}
}

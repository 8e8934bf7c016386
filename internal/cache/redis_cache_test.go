package cache

import (
	"context"
	"os"
	"testing"

	"github.com/fixhub/repair-service/internal/models"
	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestInventoryCache_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	c := NewRedisInventoryCache(client)

	// Setup
	client.Del(ctx, inventoryItemsKey)

	miss, err := c.GetItems(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if miss != nil {
		t.Errorf("expected a miss on an empty cache, got %v", miss)
	}

	items := []*models.InventoryItem{
		{ID: 1, Model: "Phone X", Product: "Screen", Condition: models.ConditionNew, Quantity: 5, Count: 2},
	}
	if err := c.SetItems(ctx, items); err != nil {
		t.Fatalf("SetItems failed: %v", err)
	}

	got, err := c.GetItems(ctx)
	if err != nil {
		t.Fatalf("GetItems failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 || got[0].Count != 2 {
		t.Errorf("unexpected cached items: %v", got)
	}

	// Cleanup
	client.Del(ctx, inventoryItemsKey)
}

func TestInventoryCache_Invalidate(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	c := NewRedisInventoryCache(client)

	if err := c.SetItems(ctx, []*models.InventoryItem{{ID: 1}}); err != nil {
		t.Fatalf("SetItems failed: %v", err)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	got, err := c.GetItems(ctx)
	if err != nil {
		t.Fatalf("GetItems failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected a miss after invalidation, got %v", got)
	}
}

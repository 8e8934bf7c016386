package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fixhub/repair-service/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	inventoryItemsKey = "inventory:items"
	inventoryItemsTTL = 30 * time.Second
)

// InventoryCache is a read-through cache for the full inventory listing.
// A (nil, nil) return from GetItems means a cache miss.
type InventoryCache interface {
	GetItems(ctx context.Context) ([]*models.InventoryItem, error)
	SetItems(ctx context.Context, items []*models.InventoryItem) error
	Invalidate(ctx context.Context) error
}

type redisInventoryCache struct {
	client *redis.Client
}

func NewRedisInventoryCache(client *redis.Client) InventoryCache {
	return &redisInventoryCache{client: client}
}

func (c *redisInventoryCache) GetItems(ctx context.Context) ([]*models.InventoryItem, error) {
	payload, err := c.client.Get(ctx, inventoryItemsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory cache: %w", err)
	}

	var items []*models.InventoryItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached inventory: %w", err)
	}

	return items, nil
}

func (c *redisInventoryCache) SetItems(ctx context.Context, items []*models.InventoryItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory for cache: %w", err)
	}

	if err := c.client.Set(ctx, inventoryItemsKey, payload, inventoryItemsTTL).Err(); err != nil {
		return fmt.Errorf("failed to write inventory cache: %w", err)
	}

	return nil
}

func (c *redisInventoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, inventoryItemsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate inventory cache: %w", err)
	}

	return nil
}

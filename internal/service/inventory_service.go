package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fixhub/repair-service/internal/cache"
	"github.com/fixhub/repair-service/internal/messaging"
	"github.com/fixhub/repair-service/internal/models"
	"github.com/fixhub/repair-service/internal/repository"
)

type InventoryService interface {
	CreateItem(ctx context.Context, req *models.CreateInventoryItemRequest) (*models.InventoryItem, error)
	ListItems(ctx context.Context) ([]*models.InventoryItem, error)
	AdjustCount(ctx context.Context, id int64, req *models.AdjustCountRequest) (*models.InventoryItem, error)
}

type inventoryService struct {
	repo     repository.InventoryRepository
	producer messaging.KafkaProducer
	cache    cache.InventoryCache
}

// NewInventoryService wires the inventory rules. The cache may be nil, in
// which case every listing hits the store directly.
func NewInventoryService(repo repository.InventoryRepository, producer messaging.KafkaProducer, itemCache cache.InventoryCache) InventoryService {
	return &inventoryService{
		repo:     repo,
		producer: producer,
		cache:    itemCache,
	}
}

func (s *inventoryService) CreateItem(ctx context.Context, req *models.CreateInventoryItemRequest) (*models.InventoryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	// The running count always starts at zero; clients cannot seed it.
	item := &models.InventoryItem{
		Model:     req.Model,
		Product:   req.Product,
		Condition: req.Condition,
		Quantity:  quantity,
		Count:     0,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.invalidateCache(ctx)

	event := &models.InventoryEvent{
		Type:      "inventory.created",
		ItemID:    item.ID,
		Count:     item.Count,
		Timestamp: item.CreatedAt,
	}

	if err := s.producer.PublishInventoryEvent(ctx, event); err != nil {
		log.Printf("Failed to publish inventory created event: %v", err)
	}

	return item, nil
}

func (s *inventoryService) ListItems(ctx context.Context) ([]*models.InventoryItem, error) {
	if s.cache != nil {
		items, err := s.cache.GetItems(ctx)
		if err != nil {
			log.Printf("Failed to read inventory cache: %v", err)
		} else if items != nil {
			return items, nil
		}
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetItems(ctx, items); err != nil {
			log.Printf("Failed to populate inventory cache: %v", err)
		}
	}

	return items, nil
}

func (s *inventoryService) AdjustCount(ctx context.Context, id int64, req *models.AdjustCountRequest) (*models.InventoryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	item, err := s.repo.AdjustCount(ctx, id, req.Operation, req.Amount)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	event := &models.InventoryEvent{
		Type:      "inventory.count_adjusted",
		ItemID:    item.ID,
		Count:     item.Count,
		Timestamp: item.UpdatedAt,
	}

	if err := s.producer.PublishInventoryEvent(ctx, event); err != nil {
		log.Printf("Failed to publish inventory count adjusted event: %v", err)
	}

	return item, nil
}

func (s *inventoryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	// Invalidation gets its own deadline so a slow cache cannot hold up
	// the response; a stale entry expires with the TTL anyway.
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Failed to invalidate inventory cache: %v", err)
	}
}

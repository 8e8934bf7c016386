package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fixhub/repair-service/internal/models"
	"github.com/jmoiron/sqlx"
)

const inventoryColumns = `id, model, product, condition, quantity, count, created_at, updated_at`

type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	FindAll(ctx context.Context) ([]*models.InventoryItem, error)
	AdjustCount(ctx context.Context, id int64, operation string, amount int) (*models.InventoryItem, error)
}

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory (model, product, condition, quantity, count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(
		ctx,
		query,
		item.Model,
		item.Product,
		item.Condition,
		item.Quantity,
		item.Count,
		now,
		now,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (r *inventoryRepository) FindAll(ctx context.Context) ([]*models.InventoryItem, error) {
	items := []*models.InventoryItem{}
	query := `SELECT ` + inventoryColumns + ` FROM inventory ORDER BY id`

	err := r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory items: %w", err)
	}

	return items, nil
}

// AdjustCount applies the whole adjustment in one UPDATE so concurrent
// adjustments to the same item cannot lose each other's writes. Subtract
// clamps at zero instead of erroring; the count column never goes negative.
func (r *inventoryRepository) AdjustCount(ctx context.Context, id int64, operation string, amount int) (*models.InventoryItem, error) {
	var query string
	switch operation {
	case models.OperationAdd:
		query = `UPDATE inventory SET count = count + $1, updated_at = $2
		         WHERE id = $3
		         RETURNING ` + inventoryColumns
	case models.OperationSubtract:
		query = `UPDATE inventory SET count = GREATEST(count - $1, 0), updated_at = $2
		         WHERE id = $3
		         RETURNING ` + inventoryColumns
	default:
		return nil, fmt.Errorf("invalid count operation %q", operation)
	}

	var item models.InventoryItem
	err := r.db.GetContext(ctx, &item, query, amount, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust inventory count: %w", err)
	}

	return &item, nil
}

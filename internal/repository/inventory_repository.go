package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

// InventoryRepository exposes the (product id, stock) projection over the
// products table. It always reflects committed state; there is no cache.
type InventoryRepository interface {
	Get(ctx context.Context, productID uuid.UUID) (domain.InventoryItem, error)
	List(ctx context.Context, offset, limit int) ([]domain.InventoryItem, int, error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// Get retrieves the stock projection for a single product
func (r *inventoryRepository) Get(ctx context.Context, productID uuid.UUID) (domain.InventoryItem, error) {
	query := `SELECT id, stock FROM products WHERE id = $1`

	var item domain.InventoryItem
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&item.ProductID, &item.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InventoryItem{}, ErrProductNotFound
		}
		return domain.InventoryItem{}, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return item, nil
}

// List retrieves stock projections with the same pagination semantics as the
// product listing (id ascending, offset/limit, no error past the end).
func (r *inventoryRepository) List(ctx context.Context, offset, limit int) ([]domain.InventoryItem, int, error) {
	countQuery := `SELECT COUNT(*) FROM products`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory: %w", err)
	}

	query := `
		SELECT id, stock
		FROM products
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ProductID, &item.Stock); err != nil {
			return nil, 0, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating inventory: %w", err)
	}

	return items, total, nil
}

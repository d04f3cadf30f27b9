package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// InsufficientStockError reports that a requested quantity exceeds the
// available stock of a product during order placement.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// UnknownProductError reports that a line item referenced a product that
// does not exist at placement time. The whole order is rejected.
type UnknownProductError struct {
	ProductID uuid.UUID
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("order references unknown product %s", e.ProductID)
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create places an order: it persists the order and its items and
	// decrements product stock, all inside one transaction. Either the
	// whole order commits or nothing does.
	Create(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create runs the order placement transaction. Line items are processed
// strictly in input order; for each one the product row is locked with
// SELECT ... FOR UPDATE before the check-then-decrement, so concurrent
// placements against the same product serialize and stock can never go
// negative. Duplicate product references in a single request apply
// cumulatively because the second item observes the first decrement.
func (r *orderRepository) Create(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	order := &domain.Order{
		ID:          uuid.New(),
		TotalAmount: req.TotalAmount,
		CreatedAt:   time.Now(),
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, total_amount, created_at) VALUES ($1, $2, $3)`,
		order.ID, order.TotalAmount, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for position, item := range req.Items {
		orderItem := &domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, position) VALUES ($1, $2, $3, $4, $5)`,
			orderItem.ID, orderItem.OrderID, orderItem.ProductID, orderItem.Quantity, position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}

		// Lock the product row for the check-then-decrement
		var stock int
		err = tx.QueryRowContext(ctx,
			`SELECT stock FROM products WHERE id = $1 FOR UPDATE`, item.ProductID,
		).Scan(&stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, &UnknownProductError{ProductID: item.ProductID}
			}
			return nil, fmt.Errorf("failed to lock product row: %w", err)
		}

		if stock < item.Quantity {
			return nil, &InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: stock,
			}
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1`,
			item.ProductID, item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}

		order.Items = append(order.Items, orderItem)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

// FindByID retrieves an order together with its items in display order
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, total_amount, created_at FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.TotalAmount, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, quantity FROM order_items WHERE order_id = $1 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &domain.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return order, nil
}

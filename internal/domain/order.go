package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is a committed customer order. Orders are immutable once created;
// there are no update or delete operations.
type Order struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	TotalAmount float64      `json:"total_amount" db:"total_amount"`
	Items       []*OrderItem `json:"items"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// OrderItem is one line of an order. Items are owned by their order and are
// only ever created as part of order placement. The product reference is by
// identifier, not ownership: deleting a product leaves historical items with
// a dangling reference.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// OrderRequest is the input to order placement. The total amount is accepted
// as given by the client and is not recomputed from the line items.
type OrderRequest struct {
	TotalAmount float64
	Items       []OrderRequestItem
}

// OrderRequestItem is one requested (product, quantity) pair. Items are
// processed strictly in input order.
type OrderRequestItem struct {
	ProductID uuid.UUID
	Quantity  int
}

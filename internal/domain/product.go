package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductUpdate lists exactly the mutable fields of a product. An update
// replaces all of them at once; there is no partial patch.
type ProductUpdate struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
}

// InventoryItem is the read-only stock projection of a product. It is
// computed from the products table on demand and never stored.
type InventoryItem struct {
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Stock     int       `json:"stock" db:"stock"`
}

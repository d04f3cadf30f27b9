package service

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("line item quantity must be positive")
)

// OrderService implements order placement. An order either commits as a
// whole, with every stock decrement applied, or leaves no trace at all.
type OrderService interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// PlaceOrder validates the request shape and delegates to the atomic
// placement transaction. The total amount is stored as given by the client;
// it is not validated against the line items.
func (s *orderService) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	return s.orderRepo.Create(ctx, req)
}

// GetOrder retrieves a committed order with its items
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

type mockOrderRepository struct {
	orders     map[uuid.UUID]*domain.Order
	createErr  error
	createSeen *domain.OrderRequest
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepository) Create(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	m.createSeen = &req
	if m.createErr != nil {
		return nil, m.createErr
	}

	order := &domain.Order{
		ID:          uuid.New(),
		TotalAmount: req.TotalAmount,
		CreatedAt:   time.Now(),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, &domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	m.orders[order.ID] = order
	return order, nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	repo := newMockOrderRepository()
	svc := NewOrderService(repo)

	for _, quantity := range []int{0, -1, -100} {
		_, err := svc.PlaceOrder(context.Background(), domain.OrderRequest{
			TotalAmount: 10.0,
			Items: []domain.OrderRequestItem{
				{ProductID: uuid.New(), Quantity: quantity},
			},
		})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}

	if repo.createSeen != nil {
		t.Error("invalid requests must not reach the repository")
	}
}

func TestPlaceOrderDelegatesValidRequests(t *testing.T) {
	repo := newMockOrderRepository()
	svc := NewOrderService(repo)

	req := domain.OrderRequest{
		TotalAmount: 25.5,
		Items: []domain.OrderRequestItem{
			{ProductID: uuid.New(), Quantity: 2},
			{ProductID: uuid.New(), Quantity: 1},
		},
	}

	order, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("expected order to succeed, got %v", err)
	}
	if repo.createSeen == nil {
		t.Fatal("request did not reach the repository")
	}
	if order.TotalAmount != 25.5 {
		t.Errorf("total amount must pass through unvalidated, got %f", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(order.Items))
	}
}

func TestPlaceOrderPropagatesRepositoryErrors(t *testing.T) {
	repo := newMockOrderRepository()
	wantErr := errors.New("boom")
	repo.createErr = wantErr
	svc := NewOrderService(repo)

	_, err := svc.PlaceOrder(context.Background(), domain.OrderRequest{
		Items: []domain.OrderRequestItem{
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repository error to propagate, got %v", err)
	}
}

func TestGetOrderDelegates(t *testing.T) {
	repo := newMockOrderRepository()
	svc := NewOrderService(repo)

	placed, err := svc.PlaceOrder(context.Background(), domain.OrderRequest{
		TotalAmount: 5.0,
		Items: []domain.OrderRequestItem{
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	got, err := svc.GetOrder(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("failed to get order: %v", err)
	}
	if got.ID != placed.ID {
		t.Errorf("expected order %s, got %s", placed.ID, got.ID)
	}
}

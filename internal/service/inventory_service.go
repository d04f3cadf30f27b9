package service

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// InventoryService exposes the read-only stock view of the catalog
type InventoryService interface {
	GetInventoryItem(ctx context.Context, productID uuid.UUID) (domain.InventoryItem, error)
	ListInventory(ctx context.Context, offset, limit int) ([]domain.InventoryItem, int, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService creates a new instance of InventoryService
func NewInventoryService(inventoryRepo repository.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

func (s *inventoryService) GetInventoryItem(ctx context.Context, productID uuid.UUID) (domain.InventoryItem, error) {
	return s.inventoryRepo.Get(ctx, productID)
}

func (s *inventoryService) ListInventory(ctx context.Context, offset, limit int) ([]domain.InventoryItem, int, error) {
	return s.inventoryRepo.List(ctx, offset, limit)
}

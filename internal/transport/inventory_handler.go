package transport

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryListResponse wraps an inventory page
type InventoryListResponse struct {
	Items  []domain.InventoryItem `json:"items"`
	Total  int                    `json:"total"`
	Offset int                    `json:"offset"`
	Limit  int                    `json:"limit"`
}

// InventoryHandler handles HTTP requests for the stock projection
type InventoryHandler struct {
	inventoryService service.InventoryService
	logger           *zap.Logger
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
}

// List returns an inventory page
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePagination(r)

	items, total, err := h.inventoryService.ListInventory(r.Context(), offset, limit)
	if err != nil {
		h.logger.Error("Failed to list inventory", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list inventory")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, InventoryListResponse{
		Items:  items,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// Get returns the stock projection for a single product
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	item, err := h.inventoryService.GetInventoryItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get inventory item", zap.Error(err), zap.String("product_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get inventory item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, item)
}

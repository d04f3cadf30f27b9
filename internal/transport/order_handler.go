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

// CreateOrderRequest is the order placement payload. The total amount is
// stored as given; it is not checked against the line items.
type CreateOrderRequest struct {
	TotalAmount float64            `json:"total_amount" validate:"gte=0"`
	Items       []OrderItemRequest `json:"items" validate:"required,dive"`
}

// OrderItemRequest is one requested line item
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// OrderHandler handles HTTP requests for order placement
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
	})
}

// Create places an order. The order and all its stock effects commit
// together or not at all; failure responses identify the offending product.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderReq := domain.OrderRequest{
		TotalAmount: req.TotalAmount,
		Items:       make([]domain.OrderRequestItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id in line item")
			return
		}
		orderReq.Items = append(orderReq.Items, domain.OrderRequestItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderService.PlaceOrder(r.Context(), orderReq)
	if err != nil {
		var insufficientStock *repository.InsufficientStockError
		var unknownProduct *repository.UnknownProductError

		switch {
		case errors.As(err, &insufficientStock):
			h.logger.Info("Order rejected: insufficient stock",
				zap.String("product_id", insufficientStock.ProductID.String()),
				zap.Int("requested", insufficientStock.Requested),
				zap.Int("available", insufficientStock.Available),
			)
			middleware.RespondWithErrorDetails(w, http.StatusConflict, "insufficient stock", map[string]interface{}{
				"product_id": insufficientStock.ProductID.String(),
				"requested":  insufficientStock.Requested,
				"available":  insufficientStock.Available,
			})
		case errors.As(err, &unknownProduct):
			h.logger.Info("Order rejected: unknown product",
				zap.String("product_id", unknownProduct.ProductID.String()),
			)
			middleware.RespondWithErrorDetails(w, http.StatusNotFound, "product not found", map[string]interface{}{
				"product_id": unknownProduct.ProductID.String(),
			})
		case errors.Is(err, service.ErrInvalidQuantity):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to place order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("items", len(order.Items)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// Get returns a committed order with its items
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to get order", zap.Error(err), zap.String("order_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

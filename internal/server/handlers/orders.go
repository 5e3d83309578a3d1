package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/server/storage"
	"github.com/avolkov/storefront/pkg/api"
)

// OrderHandler handles order creation and history for authenticated users
type OrderHandler struct {
	logger  *slog.Logger
	orders  storage.OrderStorage
	catalog storage.CatalogStorage
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(logger *slog.Logger, orders storage.OrderStorage, catalog storage.CatalogStorage) *OrderHandler {
	return &OrderHandler{logger: logger, orders: orders, catalog: catalog}
}

// Create handles POST /api/v1/orders (behind the auth gate)
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := claimsFromRequest(r)
	if !ok {
		sendError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req api.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Items) == 0 {
		sendError(w, "order must contain at least one item", http.StatusBadRequest)
		return
	}

	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    claims.UserID,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
	}

	// Unit prices are taken from the catalog at order time, never from the
	// request.
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			sendError(w, "item quantity must be positive", http.StatusBadRequest)
			return
		}

		product, err := h.catalog.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				sendError(w, "unknown product: "+item.ProductID, http.StatusBadRequest)
				return
			}
			h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
			sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if !product.InStock {
			sendError(w, "product out of stock: "+product.Name, http.StatusConflict)
			return
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			PriceCents: product.PriceCents,
		})
		order.TotalCents += product.PriceCents * int64(item.Quantity)
	}

	if err := h.orders.CreateOrder(ctx, order); err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.Int64("total_cents", order.TotalCents))

	sendJSON(w, toAPIOrder(order), http.StatusCreated)
}

// ListMine handles GET /api/v1/orders (behind the auth gate).
// Returns the caller's own orders, newest first.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := claimsFromRequest(r)
	if !ok {
		sendError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	orders, err := h.orders.ListOrdersByUser(ctx, claims.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Order, 0, len(orders))
	for i := range orders {
		resp = append(resp, toAPIOrder(&orders[i]))
	}

	sendJSON(w, resp, http.StatusOK)
}

func toAPIOrder(o *models.Order) api.Order {
	items := make([]api.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, api.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return api.Order{
		ID:         o.ID,
		UserID:     o.UserID,
		Items:      items,
		TotalCents: o.TotalCents,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}

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

// AdminHandler handles catalog writes and the all-orders view. Every route
// here is wired behind both gates (auth, then admin).
type AdminHandler struct {
	logger  *slog.Logger
	catalog storage.CatalogStorage
	orders  storage.OrderStorage
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(logger *slog.Logger, catalog storage.CatalogStorage, orders storage.OrderStorage) *AdminHandler {
	return &AdminHandler{logger: logger, catalog: catalog, orders: orders}
}

// CreateProduct handles POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	now := time.Now()
	product := &models.Product{
		ID:          uuid.New().String(),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		InStock:     req.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.catalog.CreateProduct(ctx, product); err != nil {
		h.logger.ErrorContext(ctx, "failed to create product", slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "product created", slog.String("product_id", product.ID))

	sendJSON(w, toAPIProduct(product), http.StatusCreated)
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.PathValue("id")
	if productID == "" {
		sendError(w, "product id is required", http.StatusBadRequest)
		return
	}

	req, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(w, "product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.Description = req.Description
	product.PriceCents = req.PriceCents
	product.InStock = req.InStock
	product.UpdatedAt = time.Now()

	if err := h.catalog.UpdateProduct(ctx, product); err != nil {
		h.logger.ErrorContext(ctx, "failed to update product", slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, toAPIProduct(product), http.StatusOK)
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.PathValue("id")
	if productID == "" {
		sendError(w, "product id is required", http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(w, "product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete product", slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "product deleted", slog.String("product_id", productID))

	sendJSON(w, api.Response{Success: true, Message: "Product deleted"}, http.StatusOK)
}

// ListOrders handles GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orders.ListOrders(ctx)
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

func decodeProductRequest(w http.ResponseWriter, r *http.Request) (*api.ProductRequest, bool) {
	var req api.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}

	if req.Name == "" {
		sendError(w, "product name is required", http.StatusBadRequest)
		return nil, false
	}
	if req.PriceCents < 0 {
		sendError(w, "price must not be negative", http.StatusBadRequest)
		return nil, false
	}

	return &req, true
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/server/storage"
	"github.com/avolkov/storefront/pkg/api"
)

// CatalogHandler serves the public catalog: categories and products.
// Read-only; writes go through the admin handler.
type CatalogHandler struct {
	logger  *slog.Logger
	catalog storage.CatalogStorage
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(logger *slog.Logger, catalog storage.CatalogStorage) *CatalogHandler {
	return &CatalogHandler{logger: logger, catalog: catalog}
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list categories", slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Category, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, api.Category{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}

	sendJSON(w, resp, http.StatusOK)
}

// ListProducts handles GET /api/v1/products[?category=<id>]
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.catalog.ListProducts(ctx, r.URL.Query().Get("category"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Product, 0, len(products))
	for _, p := range products {
		resp = append(resp, toAPIProduct(&p))
	}

	sendJSON(w, resp, http.StatusOK)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.PathValue("id")
	if productID == "" {
		sendError(w, "product id is required", http.StatusBadRequest)
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

	sendJSON(w, toAPIProduct(product), http.StatusOK)
}

func toAPIProduct(p *models.Product) api.Product {
	return api.Product{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
	}
}

package storage

import (
	"context"

	"github.com/avolkov/storefront/internal/models"
)

// CatalogStorage defines interface for category and product persistence
type CatalogStorage interface {
	// ListCategories returns all categories ordered by name
	ListCategories(ctx context.Context) ([]models.Category, error)

	// CreateCategory creates a new category
	CreateCategory(ctx context.Context, category *models.Category) error

	// ListProducts returns products, optionally filtered by category.
	// An empty categoryID means no filter.
	ListProducts(ctx context.Context, categoryID string) ([]models.Product, error)

	// GetProductByID retrieves product by ID
	// Returns ErrProductNotFound if product doesn't exist
	GetProductByID(ctx context.Context, productID string) (*models.Product, error)

	// CreateProduct creates a new product
	CreateProduct(ctx context.Context, product *models.Product) error

	// UpdateProduct updates product information
	// Returns ErrProductNotFound if product doesn't exist
	UpdateProduct(ctx context.Context, product *models.Product) error

	// DeleteProduct deletes product by ID
	// Returns ErrProductNotFound if product doesn't exist
	DeleteProduct(ctx context.Context, productID string) error
}

// OrderStorage defines interface for order persistence
type OrderStorage interface {
	// CreateOrder creates a new order with its items
	CreateOrder(ctx context.Context, order *models.Order) error

	// ListOrdersByUser returns the orders placed by a user, newest first
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)

	// ListOrders returns all orders, newest first (admin view)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/server/storage"
)

// ListCategories returns all categories ordered by name
func (s *Storage) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, slug, created_at FROM categories ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// CreateCategory creates a new category
func (s *Storage) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (id, name, slug, created_at) VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, category.ID, category.Name, category.Slug, category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// ListProducts returns products, optionally filtered by category
func (s *Storage) ListProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	query := `
		SELECT id, category_id, name, description, price_cents, in_stock, created_at, updated_at
		FROM products
	`
	args := []any{}
	if categoryID != "" {
		query += ` WHERE category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description,
			&p.PriceCents, &p.InStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetProductByID retrieves product by ID
func (s *Storage) GetProductByID(ctx context.Context, productID string) (*models.Product, error) {
	query := `
		SELECT id, category_id, name, description, price_cents, in_stock, created_at, updated_at
		FROM products
		WHERE id = ?
	`

	p := &models.Product{}
	err := s.db.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description,
		&p.PriceCents, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// CreateProduct creates a new product
func (s *Storage) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, description, price_cents, in_stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.InStock,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// UpdateProduct updates product information
func (s *Storage) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET category_id = ?, name = ?, description = ?, price_cents = ?, in_stock = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		product.CategoryID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.InStock,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrProductNotFound
	}

	return nil
}

// DeleteProduct deletes product by ID
func (s *Storage) DeleteProduct(ctx context.Context, productID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrProductNotFound
	}

	return nil
}

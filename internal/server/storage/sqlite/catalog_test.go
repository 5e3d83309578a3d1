package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/server/storage"
)

func testCategory(t *testing.T, s *Storage, name, slug string) *models.Category {
	t.Helper()

	c := &models.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.CreateCategory(context.Background(), c))
	return c
}

func testProduct(t *testing.T, s *Storage, categoryID, name string, priceCents int64) *models.Product {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	p := &models.Product{
		ID:          uuid.New().String(),
		CategoryID:  categoryID,
		Name:        name,
		Description: "test product",
		PriceCents:  priceCents,
		InStock:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
}

func TestStorage_Categories(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	testCategory(t, s, "Shoes", "shoes")
	testCategory(t, s, "Accessories", "accessories")

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// Ordered by name
	assert.Equal(t, "Accessories", categories[0].Name)
	assert.Equal(t, "Shoes", categories[1].Name)
}

func TestStorage_Products(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	shoes := testCategory(t, s, "Shoes", "shoes")
	bags := testCategory(t, s, "Bags", "bags")

	sneaker := testProduct(t, s, shoes.ID, "Sneaker", 5999)
	testProduct(t, s, bags.ID, "Tote", 2999)

	all, err := s.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := s.ListProducts(ctx, shoes.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, sneaker.ID, filtered[0].ID)

	got, err := s.GetProductByID(ctx, sneaker.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sneaker", got.Name)
	assert.Equal(t, int64(5999), got.PriceCents)
	assert.True(t, got.InStock)
}

func TestStorage_Product_NotFound(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	_, err := s.GetProductByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrProductNotFound)

	err = s.DeleteProduct(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
}

func TestStorage_UpdateAndDeleteProduct(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	shoes := testCategory(t, s, "Shoes", "shoes")
	p := testProduct(t, s, shoes.ID, "Sneaker", 5999)

	p.PriceCents = 4999
	p.InStock = false
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.UpdateProduct(ctx, p))

	got, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4999), got.PriceCents)
	assert.False(t, got.InStock)

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	_, err = s.GetProductByID(ctx, p.ID)
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
}

func TestStorage_Orders(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := testUser("buyer")
	require.NoError(t, s.CreateUser(ctx, user))

	shoes := testCategory(t, s, "Shoes", "shoes")
	sneaker := testProduct(t, s, shoes.ID, "Sneaker", 5999)

	order := &models.Order{
		ID:     uuid.New().String(),
		UserID: user.ID,
		Items: []models.OrderItem{
			{ProductID: sneaker.ID, Quantity: 2, PriceCents: 5999},
		},
		TotalCents: 11998,
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.CreateOrder(ctx, order))

	mine, err := s.ListOrdersByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
	assert.Equal(t, int64(11998), mine[0].TotalCents)
	require.Len(t, mine[0].Items, 1)
	assert.Equal(t, sneaker.ID, mine[0].Items[0].ProductID)
	assert.Equal(t, 2, mine[0].Items[0].Quantity)

	other, err := s.ListOrdersByUser(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Empty(t, other)

	all, err := s.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

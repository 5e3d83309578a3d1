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

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testUser(username string) *models.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestStorage_CreateAndGetUser(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := testUser("alice")
	require.NoError(t, s.CreateUser(ctx, user))

	byName, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, user.Email, byName.Email)
	assert.Equal(t, user.PasswordHash, byName.PasswordHash)
	assert.Equal(t, models.RoleUser, byName.Role)

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)
}

func TestStorage_CreateUser_Duplicate(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("alice")))

	err := s.CreateUser(ctx, testUser("alice"))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestStorage_GetUser_NotFound(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	_, err := s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_UpdateUser(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := testUser("alice")
	require.NoError(t, s.CreateUser(ctx, user))

	user.Role = models.RoleAdmin
	user.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.UpdateUser(ctx, user))

	updated, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.True(t, updated.Role.IsAdmin())
}

func TestStorage_UpdateUser_NotFound(t *testing.T) {
	s := setupTestStorage(t)

	err := s.UpdateUser(context.Background(), testUser("ghost"))
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_DeleteUser(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := testUser("alice")
	require.NoError(t, s.CreateUser(ctx, user))
	require.NoError(t, s.DeleteUser(ctx, user.ID))

	_, err := s.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	err = s.DeleteUser(ctx, user.ID)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/storefront/internal/crypto"
	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/server/storage"
	"github.com/avolkov/storefront/internal/server/token"
	"github.com/avolkov/storefront/pkg/api"
)

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // username -> User
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateUser(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserStorage) DeleteUser(ctx context.Context, id string) error         { return nil }

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupAuthHandler(users storage.UserStorage) *AuthHandler {
	return NewAuthHandler(
		setupTestLogger(),
		users,
		crypto.NewPasswordHasher(),
		token.NewManager([]byte("test-secret"), 15*time.Minute),
	)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Register_Success(t *testing.T) {
	users := newMockUserStorage()
	h := setupAuthHandler(users)

	w := postJSON(t, h.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, 0, resp.User.Role, "new users are regular users")

	// The stored hash verifies against the submitted credential and the
	// plaintext never appears in the stored record.
	stored := users.users["alice"]
	require.NotNil(t, stored)
	assert.NotContains(t, stored.PasswordHash, "secret-password")

	ok, err := crypto.NewPasswordHasher().Verify("secret-password", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := setupAuthHandler(newMockUserStorage())

	tests := []struct {
		name string
		req  api.RegisterRequest
	}{
		{name: "empty username", req: api.RegisterRequest{Email: "a@b.co", Password: "validpass"}},
		{name: "bad username", req: api.RegisterRequest{Username: "a b", Email: "a@b.co", Password: "validpass"}},
		{name: "bad email", req: api.RegisterRequest{Username: "alice", Email: "nope", Password: "validpass"}},
		{name: "short password", req: api.RegisterRequest{Username: "alice", Email: "a@b.co", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Register, "/api/v1/auth/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	users := newMockUserStorage()
	h := setupAuthHandler(users)

	req := api.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret-password"}

	w := postJSON(t, h.Register, "/api/v1/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Register, "/api/v1/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	users := newMockUserStorage()
	h := setupAuthHandler(users)

	w := postJSON(t, h.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Login, "/api/v1/auth/login", api.LoginRequest{
		Username: "alice",
		Password: "secret-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)
	assert.Equal(t, "alice", resp.User.Username)

	// The issued token verifies against the same secret.
	claims, err := token.NewManager([]byte("test-secret"), 15*time.Minute).Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	users := newMockUserStorage()
	h := setupAuthHandler(users)

	w := postJSON(t, h.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name string
		req  api.LoginRequest
	}{
		{name: "wrong password", req: api.LoginRequest{Username: "alice", Password: "wrong-password"}},
		{name: "unknown user", req: api.LoginRequest{Username: "nobody", Password: "secret-password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Login, "/api/v1/auth/login", tt.req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			// Wrong password and unknown user are indistinguishable.
			assert.JSONEq(t, `{"success":false,"message":"invalid username or password"}`, w.Body.String())
		})
	}
}

func TestAuthHandler_Login_CorruptedHashIsNotAWrongPassword(t *testing.T) {
	users := newMockUserStorage()
	users.users["alice"] = &models.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "not-a-phc-string",
	}
	h := setupAuthHandler(users)

	w := postJSON(t, h.Login, "/api/v1/auth/login", api.LoginRequest{
		Username: "alice",
		Password: "whatever",
	})

	// Corrupted stored hash surfaces as a server error, not a 401.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Login_StorageError(t *testing.T) {
	users := newMockUserStorage()
	users.getError = errors.New("disk on fire")
	h := setupAuthHandler(users)

	w := postJSON(t, h.Login, "/api/v1/auth/login", api.LoginRequest{
		Username: "alice",
		Password: "whatever",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/storefront/internal/server/token"
	"github.com/avolkov/storefront/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func testTokenManager() *token.Manager {
	return token.NewManager([]byte("test-secret-key"), 15*time.Minute)
}

func TestAuth_Success(t *testing.T) {
	tokens := testTokenManager()

	signed, err := tokens.Issue("user-123")
	require.NoError(t, err)

	invocations := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invocations++

		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok, "claims should be attached to the context")
		assert.Equal(t, "user-123", claims.UserID)
		assert.NotNil(t, claims.IssuedAt)
		assert.NotNil(t, claims.ExpiresAt)

		w.WriteHeader(http.StatusOK)
	})

	wrapped := Auth(setupTestLogger(), tokens)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(api.TokenHeader, signed)

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, invocations, "next stage must be invoked exactly once")
}

func TestAuth_Rejections(t *testing.T) {
	tokens := testTokenManager()

	valid, err := tokens.Issue("user-123")
	require.NoError(t, err)

	expired := token.NewManager([]byte("test-secret-key"), 1*time.Nanosecond)
	expiredToken, err := expired.Issue("user-123")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	otherSecret := token.NewManager([]byte("some-other-secret"), 15*time.Minute)
	wrongSignature, err := otherSecret.Issue("user-123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		setHeader bool
		value     string
	}{
		{name: "missing header", setHeader: false},
		{name: "empty header", setHeader: true, value: ""},
		{name: "malformed token", setHeader: true, value: "not-a-token"},
		{name: "truncated token", setHeader: true, value: valid[:len(valid)-8]},
		{name: "expired token", setHeader: true, value: expiredToken},
		{name: "wrong signature", setHeader: true, value: wrongSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next stage must never be invoked on rejection")
			})
			wrapped := Auth(setupTestLogger(), tokens)(handler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			if tt.setHeader {
				req.Header.Set(api.TokenHeader, tt.value)
			}

			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			// Every rejection produces the exact same body.
			assert.JSONEq(t, `{"success":false,"message":"Invalid or expired token"}`, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

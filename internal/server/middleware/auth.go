// Package middleware contains the request pipeline stages of the storefront
// server: the authentication and authorization gates, request logging,
// panic recovery and rate limiting.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avolkov/storefront/internal/server/token"
	"github.com/avolkov/storefront/pkg/api"
)

// MsgInvalidToken is the uniform body message of the authentication gate.
// Every failure mode (missing, malformed, expired, bad signature) produces
// this exact message so that callers cannot probe verification internals.
const MsgInvalidToken = "Invalid or expired token"

// Auth creates the authentication gate. It reads the session token from the
// api.TokenHeader header (the raw token, no prefix scheme), verifies it and
// attaches the decoded claims to the request context. On any failure the
// request is terminated with 401 and the next handler is never invoked.
func Auth(logger *slog.Logger, tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(api.TokenHeader)

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.WarnContext(r.Context(), "request rejected by auth gate",
					"path", r.URL.Path)
				writeJSON(w, http.StatusUnauthorized, api.Response{
					Success: false,
					Message: MsgInvalidToken,
				})
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeJSON writes the uniform error envelope used by both gates
func writeJSON(w http.ResponseWriter, status int, body api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

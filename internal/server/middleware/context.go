package middleware

import (
	"context"

	"github.com/avolkov/storefront/internal/server/token"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const claimsKey contextKey = "claims"

// NewContextWithClaims returns a child context carrying the identity claims
// attached by the authentication gate
func NewContextWithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext extracts the identity claims attached by the
// authentication gate. The second return value is false if the request never
// passed the gate.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

// Package handlers contains the HTTP handlers of the storefront API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avolkov/storefront/internal/server/middleware"
	"github.com/avolkov/storefront/internal/server/token"
	"github.com/avolkov/storefront/pkg/api"
)

// claimsFromRequest returns the identity claims attached by the auth gate
func claimsFromRequest(r *http.Request) (*token.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}

// sendJSON writes v as a JSON response with the given status
func sendJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// sendError writes the uniform error envelope
func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, api.Response{Success: false, Message: message}, status)
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/avolkov/storefront/internal/server/storage"
	"github.com/avolkov/storefront/pkg/api"
)

// Messages of the two authorization failure branches. They are distinct
// kinds even though both currently map to 401: MsgAdminError means the role
// could not be determined at all, MsgUnauthorized means it was determined
// and is insufficient.
const (
	MsgAdminError   = "Error in admin middleware"
	MsgUnauthorized = "UnAuthorized Access"
)

// AdminOnly creates the authorization gate for admin-only routes. It must
// run after Auth: it resolves the full user record for the identity attached
// to the context and admits the request only when the resolved role is
// admin. Everything else denies.
//
// Failure branches:
//   - claims missing, empty user id, or a failed/empty user lookup is an
//     infrastructure failure, not a denial: the role could not be determined;
//   - a resolved role other than admin is a policy denial. Default-deny: the
//     role domain is open on the wire (0, 2, -1, anything), only the single
//     admin value admits.
func AdminOnly(logger *slog.Logger, users storage.UserStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, ok := ClaimsFromContext(ctx)
			if !ok || claims.UserID == "" {
				logger.ErrorContext(ctx, "admin gate reached without identity claims",
					"path", r.URL.Path)
				writeJSON(w, http.StatusUnauthorized, api.Response{
					Success: false,
					Message: MsgAdminError,
				})
				return
			}

			user, err := users.GetUserByID(ctx, claims.UserID)
			if err != nil {
				logger.ErrorContext(ctx, "admin gate failed to resolve user",
					"user_id", claims.UserID,
					"error", err)
				writeJSON(w, http.StatusUnauthorized, api.Response{
					Success: false,
					Message: MsgAdminError,
					Error:   err.Error(),
				})
				return
			}

			if !user.Role.IsAdmin() {
				logger.WarnContext(ctx, "admin access denied",
					"user_id", claims.UserID,
					"role", int(user.Role))
				writeJSON(w, http.StatusUnauthorized, api.Response{
					Success: false,
					Message: MsgUnauthorized,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

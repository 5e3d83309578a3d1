package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/avolkov/storefront/pkg/api"
)

// Recovery creates middleware that recovers from panics in downstream
// handlers. It logs the stack trace and returns a generic 500 without
// leaking details to the client.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
						"stack", string(debug.Stack()),
					)

					writeJSON(w, http.StatusInternalServerError, api.Response{
						Success: false,
						Message: "Internal Server Error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

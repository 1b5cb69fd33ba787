// Package admin gates the operator surface at the transport layer. The token
// is stored as a bcrypt hash so a leaked configuration never exposes the
// plaintext token; the capability check proper happens again in the services.
package admin

import (
	"log/slog"
	"net/http"

	request "bursar/pkg/platform/middleware/request"
	"bursar/pkg/secrets"
)

const headerAdminToken = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token does not verify
// against the configured bcrypt hash.
func RequireAdminToken(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(headerAdminToken)
			if token == "" || secrets.Verify(token, tokenHash) != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", request.GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

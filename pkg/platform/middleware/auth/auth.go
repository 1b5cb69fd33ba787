package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "bursar/pkg/domain"
	request "bursar/pkg/platform/middleware/request"
	"bursar/pkg/requestcontext"
)

// Claims represents the claims we expect from the token validator.
type Claims struct {
	AccountID string
}

// TokenValidator validates a bearer token and extracts its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// writeJSONError writes a JSON error response with the given status code.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth authenticates the caller from the Authorization header and
// stores the account ID in the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "bearer token required")
				return
			}

			claims, err := validator.ValidateToken(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				logger.WarnContext(ctx, "token validation failed",
					"request_id", request.GetRequestID(ctx),
					"error", err,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			account, err := id.ParseAccountID(claims.AccountID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid token subject")
				return
			}

			ctx = requestcontext.WithAccountID(ctx, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

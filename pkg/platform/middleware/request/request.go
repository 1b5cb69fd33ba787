// Package request provides request-ID middleware. Every request gets a
// correlation ID (client-supplied X-Request-ID or a fresh UUID) stored in the
// context and echoed on the response.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"bursar/pkg/requestcontext"
)

const headerRequestID = "X-Request-ID"

// Middleware assigns a request ID and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}

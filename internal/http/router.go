// Package httpapi assembles the public HTTP surface: the participant payment
// routes behind bearer auth, the operator routes behind the admin token, and
// the unauthenticated operational endpoints.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminhandler "bursar/internal/admin/handler"
	gatewayhandler "bursar/internal/gateway/handler"
	"bursar/internal/token"
	adminmw "bursar/pkg/platform/middleware/admin"
	"bursar/pkg/platform/middleware/auth"
	request "bursar/pkg/platform/middleware/request"
	"bursar/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router mounts.
type Deps struct {
	Payments       *gatewayhandler.Handler
	Admin          *adminhandler.Handler
	Tokens         *token.Service
	AdminTokenHash string
	Logger         *slog.Logger
}

// NewRouter wires all endpoints with their middleware chains.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Participant surface: bearer token identifies the account.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokenValidator{d.Tokens}, d.Logger))
		d.Payments.Register(r)
	})

	// Operator surface: shared admin token at the transport layer, actor
	// identity from the bearer token, capability check in the services.
	r.Group(func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(d.AdminTokenHash, d.Logger))
		r.Use(auth.RequireAuth(tokenValidator{d.Tokens}, d.Logger))
		d.Admin.Register(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// tokenValidator adapts the token service to the auth middleware contract.
type tokenValidator struct {
	tokens *token.Service
}

func (v tokenValidator) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := v.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &auth.Claims{AccountID: claims.AccountID}, nil
}

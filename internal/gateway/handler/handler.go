package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bursar/internal/gateway"
	id "bursar/pkg/domain"
	dErrors "bursar/pkg/domain-errors"
	"bursar/pkg/platform/httputil"
	"bursar/pkg/requestcontext"
)

// Service defines the interface for payment operations.
type Service interface {
	CollectFee(ctx context.Context, caller id.AccountID, value int64) (*gateway.Receipt, error)
	Disburse(ctx context.Context, caller id.AccountID) (*gateway.Receipt, error)
}

// Handler wires payment endpoints to the gateway service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a payment handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts payment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/payments/fee", h.HandleCollectFee)
	r.Post("/payments/payout", h.HandleDisburse)
}

// HandleCollectFee handles POST /payments/fee requests.
func (h *Handler) HandleCollectFee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	caller := requestcontext.AccountID(ctx)
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[CollectFeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	receipt, err := h.service.CollectFee(ctx, caller, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "fee collection refused",
			"request_id", requestID,
			"account", caller,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "fee collected",
		"request_id", requestID,
		"account", caller,
		"period", receipt.Period,
		"amount", receipt.Amount,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromReceipt(receipt))
}

// HandleDisburse handles POST /payments/payout requests.
func (h *Handler) HandleDisburse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	caller := requestcontext.AccountID(ctx)
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	receipt, err := h.service.Disburse(ctx, caller)
	if err != nil {
		h.logger.WarnContext(ctx, "payout refused",
			"request_id", requestID,
			"account", caller,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payout disbursed",
		"request_id", requestID,
		"account", caller,
		"period", receipt.Period,
		"amount", receipt.Amount,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromReceipt(receipt))
}

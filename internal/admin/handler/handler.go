// Package handler exposes the operator surface: monetary settings, the live
// accounting period, and the oracle reference. Every mutating route requires
// the admin token (transport middleware) plus an authenticated actor holding
// the admin capability (service-level check).
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bursar/internal/settings"
	id "bursar/pkg/domain"
	dErrors "bursar/pkg/domain-errors"
	"bursar/pkg/platform/httputil"
	"bursar/pkg/requestcontext"
)

// SettingsService defines the settings operations the admin surface needs.
type SettingsService interface {
	Current(ctx context.Context) (settings.Settings, error)
	SetFee(ctx context.Context, actor id.AccountID, amount int64) error
	SetPayout(ctx context.Context, actor id.AccountID, amount int64) error
	SetOracleRef(ctx context.Context, actor id.AccountID, ref string) error
}

// PeriodService defines the period operations the admin surface needs.
type PeriodService interface {
	Current(ctx context.Context) (id.Period, error)
	SetMonth(ctx context.Context, actor id.AccountID, month int) error
	SetYear(ctx context.Context, actor id.AccountID, year int) error
}

// Handler wires admin endpoints to the settings and period services.
type Handler struct {
	settings SettingsService
	periods  PeriodService
	logger   *slog.Logger
}

// New constructs an admin handler with its dependencies.
func New(settingsService SettingsService, periodService PeriodService, logger *slog.Logger) *Handler {
	return &Handler{
		settings: settingsService,
		periods:  periodService,
		logger:   logger,
	}
}

// Register mounts admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/settings", h.HandleGetSettings)
	r.Put("/admin/settings/fee", h.HandleSetFee)
	r.Put("/admin/settings/payout", h.HandleSetPayout)
	r.Put("/admin/settings/oracle", h.HandleSetOracleRef)
	r.Get("/admin/period", h.HandleGetPeriod)
	r.Put("/admin/period/month", h.HandleSetMonth)
	r.Put("/admin/period/year", h.HandleSetYear)
}

// actor pulls the authenticated account out of the context, writing a 401 on
// absence. Admin token possession alone is not an identity.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (id.AccountID, bool) {
	caller := requestcontext.AccountID(r.Context())
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.AccountID{}, false
	}
	return caller, true
}

// HandleGetSettings handles GET /admin/settings requests.
func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := h.settings.Current(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSettings(current))
}

// HandleSetFee handles PUT /admin/settings/fee requests.
func (h *Handler) HandleSetFee(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, "fee amount updated", h.settings.SetFee)
}

// HandleSetPayout handles PUT /admin/settings/payout requests.
func (h *Handler) HandleSetPayout(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, "payout amount updated", h.settings.SetPayout)
}

func (h *Handler) applyAmount(w http.ResponseWriter, r *http.Request, msg string, set func(context.Context, id.AccountID, int64) error) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.actor(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SetAmountRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := set(ctx, caller, req.Amount); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, msg,
		"request_id", requestID,
		"actor", caller,
		"amount", req.Amount,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetOracleRef handles PUT /admin/settings/oracle requests.
func (h *Handler) HandleSetOracleRef(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.actor(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SetOracleRefRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.settings.SetOracleRef(ctx, caller, req.Reference); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "oracle reference updated",
		"request_id", requestID,
		"actor", caller,
		"reference", req.Reference,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetPeriod handles GET /admin/period requests.
func (h *Handler) HandleGetPeriod(w http.ResponseWriter, r *http.Request) {
	current, err := h.periods.Current(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPeriod(current))
}

// HandleSetMonth handles PUT /admin/period/month requests.
func (h *Handler) HandleSetMonth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.actor(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SetMonthRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.periods.SetMonth(ctx, caller, req.Month); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "current month updated",
		"request_id", requestID,
		"actor", caller,
		"month", req.Month,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetYear handles PUT /admin/period/year requests.
func (h *Handler) HandleSetYear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.actor(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SetYearRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.periods.SetYear(ctx, caller, req.Year); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "current year updated",
		"request_id", requestID,
		"actor", caller,
		"year", req.Year,
	)
	w.WriteHeader(http.StatusNoContent)
}

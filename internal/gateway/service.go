// Package gateway is the eligibility-gated payment state machine. Each
// operation is a short sequential pipeline: classify the caller against the
// identity oracle, gate on class, standing, and the settlement ledger, move
// funds, and only then commit the ledger slot. Nothing persists across calls
// beyond the period marker and the ledger booleans.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bursar/internal/gateway/metrics"
	"bursar/internal/gateway/ports"
	"bursar/internal/ledger"
	id "bursar/pkg/domain"
	dErrors "bursar/pkg/domain-errors"
	"bursar/pkg/requestcontext"
)

// Rejection reasons, used for metrics labels and log fields. Keeping them
// distinct lets observers tell the "not eligible" cases apart.
const (
	ReasonOracleUnavailable = "oracle_unavailable"
	ReasonAttributeExpired  = "attribute_expired"
	ReasonWrongClass        = "wrong_participant_class"
	ReasonSuspended         = "suspended_participant"
	ReasonAlreadySettled    = "already_settled"
	ReasonIncorrectAmount   = "incorrect_amount"
	ReasonTransferFailed    = "transfer_failed"
	ReasonNotConfigured     = "not_configured"
	ReasonInternal          = "internal"
)

// Receipt describes a completed settlement.
type Receipt struct {
	Account id.AccountID
	Period  id.Period
	Kind    id.SettlementKind
	Amount  int64
}

// Service orchestrates the payment pipeline.
type Service struct {
	oracle     ports.Oracle
	ledger     ports.Ledger
	transferer ports.Transferer
	settings   ports.Settings
	periods    ports.Periods
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer

	// mu serializes the whole check-transfer-mark pipeline so no two calls
	// for the same slot can both pass the ledger check.
	mu sync.Mutex
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(oracleClient ports.Oracle, ledgerStore ports.Ledger, transferer ports.Transferer, settingsReader ports.Settings, periodReader ports.Periods, opts ...Option) (*Service, error) {
	if oracleClient == nil {
		return nil, fmt.Errorf("oracle client is required")
	}
	if ledgerStore == nil {
		return nil, fmt.Errorf("ledger store is required")
	}
	if transferer == nil {
		return nil, fmt.Errorf("transferer is required")
	}
	if settingsReader == nil {
		return nil, fmt.Errorf("settings reader is required")
	}
	if periodReader == nil {
		return nil, fmt.Errorf("period reader is required")
	}

	svc := &Service{
		oracle:     oracleClient,
		ledger:     ledgerStore,
		transferer: transferer,
		settings:   settingsReader,
		periods:    periodReader,
		tracer:     otel.Tracer("bursar/gateway"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CollectFee settles the caller's fee for the current period. The enclosed
// value must match the configured fee exactly; there is no change-making and
// no partial credit. The value was captured upstream, so no outbound transfer
// happens here.
func (s *Service) CollectFee(ctx context.Context, caller id.AccountID, value int64) (*Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "gateway.CollectFee",
		trace.WithAttributes(attribute.String("account", caller.String())))
	defer span.End()

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observeLatency(id.KindFee, time.Since(start)) }()

	key, err := s.authorize(ctx, caller, id.ClassPayer, id.KindFee)
	if err != nil {
		return nil, err
	}

	current, err := s.settings.Current(ctx)
	if err != nil {
		s.reject(ctx, caller, id.KindFee, ReasonInternal)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
	}
	if current.FeeAmount <= 0 {
		s.reject(ctx, caller, id.KindFee, ReasonNotConfigured)
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "fee amount is not configured")
	}
	if value != current.FeeAmount {
		s.reject(ctx, caller, id.KindFee, ReasonIncorrectAmount)
		return nil, dErrors.Newf(dErrors.CodeValidation,
			"incorrect amount: the fee is %d, got %d", current.FeeAmount, value)
	}

	// The value is already in custody; committing the slot is the last step
	// so no observer ever sees "settled" without the money.
	if err := s.ledger.MarkSettled(ctx, key); err != nil {
		s.reject(ctx, caller, id.KindFee, ReasonInternal)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark ledger entry")
	}

	s.settled(ctx, caller, key, current.FeeAmount)
	return &Receipt{Account: caller, Period: key.Period, Kind: id.KindFee, Amount: current.FeeAmount}, nil
}

// Disburse pays the configured payout to the caller for the current period.
// The ledger slot is committed only after the transfer succeeds; a failed
// transfer leaves all state unchanged.
func (s *Service) Disburse(ctx context.Context, caller id.AccountID) (*Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "gateway.Disburse",
		trace.WithAttributes(attribute.String("account", caller.String())))
	defer span.End()

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observeLatency(id.KindPayout, time.Since(start)) }()

	key, err := s.authorize(ctx, caller, id.ClassPayee, id.KindPayout)
	if err != nil {
		return nil, err
	}

	current, err := s.settings.Current(ctx)
	if err != nil {
		s.reject(ctx, caller, id.KindPayout, ReasonInternal)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
	}
	if current.PayoutAmount <= 0 {
		s.reject(ctx, caller, id.KindPayout, ReasonNotConfigured)
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "payout amount is not configured")
	}

	if err := s.transferer.Send(ctx, caller, current.PayoutAmount); err != nil {
		s.reject(ctx, caller, id.KindPayout, ReasonTransferFailed)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "funds transfer failed")
	}

	if err := s.ledger.MarkSettled(ctx, key); err != nil {
		// Funds moved but the slot is unmarked; surface loudly for operators.
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "ledger commit failed after transfer",
				"account", caller,
				"period", key.Period,
				"kind", key.Kind,
				"error", err,
			)
		}
		s.reject(ctx, caller, id.KindPayout, ReasonInternal)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark ledger entry")
	}

	s.settled(ctx, caller, key, current.PayoutAmount)
	return &Receipt{Account: caller, Period: key.Period, Kind: id.KindPayout, Amount: current.PayoutAmount}, nil
}

// callerClassMatchesRequired is the class gate condition, named so the chosen
// sense is explicit and testable: the caller's class must equal the class the
// operation requires.
func callerClassMatchesRequired(got, required id.ParticipantClass) bool {
	return got == required
}

// authorize runs pipeline steps 1-4: classify, class gate, standing gate,
// ledger gate. On success it returns the slot key for the commit step.
func (s *Service) authorize(ctx context.Context, caller id.AccountID, required id.ParticipantClass, kind id.SettlementKind) (ledger.Key, error) {
	classification, err := s.oracle.Classify(ctx, caller)
	if err != nil {
		s.reject(ctx, caller, kind, ReasonOracleUnavailable)
		return ledger.Key{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "identity oracle unavailable")
	}

	now := requestcontext.Now(ctx)
	if classification.Expired(now) {
		s.reject(ctx, caller, kind, ReasonAttributeExpired)
		return ledger.Key{}, dErrors.Newf(dErrors.CodeForbidden,
			"classification attribute expired at %s", classification.ExpiresAt.Format(time.RFC3339))
	}

	if !callerClassMatchesRequired(classification.Kind, required) {
		s.reject(ctx, caller, kind, ReasonWrongClass)
		return ledger.Key{}, dErrors.Newf(dErrors.CodeForbidden,
			"wrong participant class: %s required, caller is %s", required, classification.Kind)
	}

	if classification.Suspended {
		s.reject(ctx, caller, kind, ReasonSuspended)
		return ledger.Key{}, dErrors.New(dErrors.CodeForbidden, "participant is suspended")
	}

	period, err := s.periods.Current(ctx)
	if err != nil {
		s.reject(ctx, caller, kind, ReasonInternal)
		return ledger.Key{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load period")
	}

	key := ledger.Key{Account: caller, Period: period, Kind: kind}
	settled, err := s.ledger.IsSettled(ctx, key)
	if err != nil {
		s.reject(ctx, caller, kind, ReasonInternal)
		return ledger.Key{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read ledger entry")
	}
	if settled {
		s.reject(ctx, caller, kind, ReasonAlreadySettled)
		return ledger.Key{}, dErrors.Newf(dErrors.CodeConflict,
			"%s already settled for period %s", kind, period)
	}

	return key, nil
}

func (s *Service) settled(ctx context.Context, caller id.AccountID, key ledger.Key, amount int64) {
	s.metrics.IncrementSettled(string(key.Kind))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "payment settled",
			"request_id", requestcontext.RequestID(ctx),
			"account", caller,
			"period", key.Period,
			"kind", key.Kind,
			"amount", amount,
		)
	}
}

func (s *Service) reject(ctx context.Context, caller id.AccountID, kind id.SettlementKind, reason string) {
	s.metrics.IncrementRejected(string(kind), reason)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "payment rejected",
			"request_id", requestcontext.RequestID(ctx),
			"account", caller,
			"kind", kind,
			"reason", reason,
		)
	}
}

func (s *Service) observeLatency(kind id.SettlementKind, d time.Duration) {
	s.metrics.ObservePipelineLatency(string(kind), d)
}

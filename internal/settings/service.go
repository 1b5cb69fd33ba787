package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"bursar/internal/accesscontrol"
	"bursar/internal/events"
	id "bursar/pkg/domain"
	dErrors "bursar/pkg/domain-errors"
)

// Service applies validated, capability-gated updates to the live settings.
type Service struct {
	store     Store
	access    accesscontrol.Checker
	logger    *slog.Logger
	publisher events.Publisher

	// mu serializes read-modify-write cycles so two admin calls cannot
	// interleave their saves.
	mu sync.Mutex
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func New(store Store, access accesscontrol.Checker, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("settings store is required")
	}
	if access == nil {
		return nil, fmt.Errorf("access checker is required")
	}

	svc := &Service{store: store, access: access}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Current returns the live settings.
func (s *Service) Current(ctx context.Context) (Settings, error) {
	current, err := s.store.Get(ctx)
	if err != nil {
		return Settings{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
	}
	return current, nil
}

// OracleRef returns the configured oracle endpoint. Implements the oracle
// client's RefSource so the endpoint can change at runtime.
func (s *Service) OracleRef(ctx context.Context) (string, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	if current.OracleRef == "" {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "oracle reference is not configured")
	}
	return current.OracleRef, nil
}

// SetFee updates the per-period fee amount.
func (s *Service) SetFee(ctx context.Context, actor id.AccountID, amount int64) error {
	if err := accesscontrol.RequireAdmin(ctx, s.access, actor); err != nil {
		return err
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "fee amount must be greater than zero")
	}

	if err := s.update(ctx, func(current *Settings) { current.FeeAmount = amount }); err != nil {
		return err
	}

	n := events.FeeAmountChanged(amount)
	n.Actor = actor.String()
	events.Emit(ctx, s.logger, s.publisher, n)
	return nil
}

// SetPayout updates the per-period payout amount.
func (s *Service) SetPayout(ctx context.Context, actor id.AccountID, amount int64) error {
	if err := accesscontrol.RequireAdmin(ctx, s.access, actor); err != nil {
		return err
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "payout amount must be greater than zero")
	}

	if err := s.update(ctx, func(current *Settings) { current.PayoutAmount = amount }); err != nil {
		return err
	}

	n := events.PayoutAmountChanged(amount)
	n.Actor = actor.String()
	events.Emit(ctx, s.logger, s.publisher, n)
	return nil
}

// SetOracleRef points the system at a different identity oracle.
func (s *Service) SetOracleRef(ctx context.Context, actor id.AccountID, ref string) error {
	if err := accesscontrol.RequireAdmin(ctx, s.access, actor); err != nil {
		return err
	}
	if ref == "" {
		return dErrors.New(dErrors.CodeValidation, "oracle reference must not be empty")
	}

	if err := s.update(ctx, func(current *Settings) { current.OracleRef = ref }); err != nil {
		return err
	}

	n := events.OracleReferenceChanged(ref)
	n.Actor = actor.String()
	events.Emit(ctx, s.logger, s.publisher, n)
	return nil
}

func (s *Service) update(ctx context.Context, mutate func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Get(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
	}
	mutate(&current)
	if err := s.store.Save(ctx, current); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save settings")
	}
	return nil
}

package period

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

// Service validates and applies period changes. The epoch floor is fixed at
// construction (deployment configuration), never recomputed.
type Service struct {
	store      Store
	access     accesscontrol.Checker
	epochFloor int
	logger     *slog.Logger
	publisher  events.Publisher

	mu sync.Mutex
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func New(store Store, access accesscontrol.Checker, epochFloor int, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("period store is required")
	}
	if access == nil {
		return nil, fmt.Errorf("access checker is required")
	}

	svc := &Service{store: store, access: access, epochFloor: epochFloor}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Current returns the live period. Pure read, no capability required.
func (s *Service) Current(ctx context.Context) (id.Period, error) {
	current, err := s.store.Get(ctx)
	if err != nil {
		return id.Period{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load period")
	}
	return current, nil
}

// SetMonth moves the live period to a new month. Emits the month change
// notification plus a payment reminder for the fresh period.
func (s *Service) SetMonth(ctx context.Context, actor id.AccountID, month int) error {
	if err := accesscontrol.RequireAdmin(ctx, s.access, actor); err != nil {
		return err
	}
	if month < 1 || month > 12 {
		return dErrors.Newf(dErrors.CodeValidation, "month must be between 1 and 12, got %d", month)
	}

	updated, err := s.update(ctx, func(p *id.Period) { p.Month = month })
	if err != nil {
		return err
	}

	n := events.CurrentMonthChanged(month)
	n.Actor = actor.String()
	events.Emit(ctx, s.logger, s.publisher, n)
	events.Emit(ctx, s.logger, s.publisher, events.PaymentReminder(updated.Month, updated.Year))
	return nil
}

// SetYear moves the live period to a new year. The year must be strictly
// greater than the configured epoch floor.
func (s *Service) SetYear(ctx context.Context, actor id.AccountID, year int) error {
	if err := accesscontrol.RequireAdmin(ctx, s.access, actor); err != nil {
		return err
	}
	if year <= s.epochFloor {
		return dErrors.Newf(dErrors.CodeValidation, "year must be greater than %d, got %d", s.epochFloor, year)
	}

	if _, err := s.update(ctx, func(p *id.Period) { p.Year = year }); err != nil {
		return err
	}

	n := events.CurrentYearChanged(year)
	n.Actor = actor.String()
	events.Emit(ctx, s.logger, s.publisher, n)
	return nil
}

func (s *Service) update(ctx context.Context, mutate func(*id.Period)) (id.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Get(ctx)
	if err != nil {
		return id.Period{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load period")
	}
	mutate(&current)
	if err := s.store.Save(ctx, current); err != nil {
		return id.Period{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save period")
	}
	return current, nil
}

// Package ports defines the collaborator interfaces the payment gateway
// consumes. The gateway owns no state of its own; everything it needs is
// fetched fresh through these ports on every call.
package ports

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

import (
	"context"

	"bursar/internal/ledger"
	"bursar/internal/oracle"
	"bursar/internal/settings"
	id "bursar/pkg/domain"
)

// Oracle classifies accounts via the external identity oracle.
type Oracle interface {
	Classify(ctx context.Context, account id.AccountID) (oracle.Classification, error)
}

// Ledger is the settlement record for (account, period, kind) slots.
type Ledger interface {
	IsSettled(ctx context.Context, key ledger.Key) (bool, error)
	MarkSettled(ctx context.Context, key ledger.Key) error
}

// Transferer moves funds out to an account.
type Transferer interface {
	Send(ctx context.Context, to id.AccountID, amount int64) error
}

// Settings exposes the live monetary configuration.
type Settings interface {
	Current(ctx context.Context) (settings.Settings, error)
}

// Periods exposes the live accounting period.
type Periods interface {
	Current(ctx context.Context) (id.Period, error)
}

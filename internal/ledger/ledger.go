// Package ledger is the at-most-once bookkeeping for gated payments. Each
// (account, period, kind) slot is a boolean: absent means "not settled this
// period", present means the action already completed. Slots are permanent
// records; advancing the period creates fresh unset slots rather than
// clearing old ones.
package ledger

import (
	"context"
	"fmt"

	id "bursar/pkg/domain"
)

// Key identifies one settlement slot.
type Key struct {
	Account id.AccountID
	Period  id.Period
	Kind    id.SettlementKind
}

// String renders the key for sparse keyed stores (redis, logs).
func (k Key) String() string {
	return fmt.Sprintf("ledger:%s:%s:%s", k.Account, k.Period.Key(), k.Kind)
}

// Store is the sparse associative settlement record. Lookup is O(1)
// amortized; the key space (accounts x periods) is unbounded so
// implementations must not pre-size by calendar. There is no delete.
type Store interface {
	// IsSettled reports whether the slot is marked. Absent slots are false.
	IsSettled(ctx context.Context, key Key) (bool, error)

	// MarkSettled marks the slot. Idempotent in effect: marking twice is
	// harmless, though callers must not issue it twice for one logical action.
	MarkSettled(ctx context.Context, key Key) error
}

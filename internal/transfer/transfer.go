// Package transfer is the funds movement primitive the gateway invokes for
// payouts. Custody and settlement mechanics live behind the port; the core
// only needs success-or-failure within a bounded time.
package transfer

import (
	"context"

	id "bursar/pkg/domain"
)

// Transferer moves value to an account. Implementations must fail within a
// bounded time; non-response surfaces as an error wrapping
// sentinel.ErrUnavailable rather than a hang.
type Transferer interface {
	Send(ctx context.Context, to id.AccountID, amount int64) error
}

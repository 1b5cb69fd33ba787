// Package period owns the single live accounting period. The period is the
// only calendar the ledger knows about: advancing it is how settled slots get
// refreshed, so mutation is restricted to the administrative capability.
package period

import (
	"context"

	id "bursar/pkg/domain"
)

// Store persists the live period marker.
type Store interface {
	Get(ctx context.Context) (id.Period, error)
	Save(ctx context.Context, p id.Period) error
}

// Package oracle wraps the external identity-verification oracle. The oracle
// classifies an account as payer, payee, or other, with an expiry on the
// classification and a suspension flag. The core fetches a fresh
// classification on every gated call and never stores it.
package oracle

import (
	"context"
	"time"

	id "bursar/pkg/domain"
)

// Classification is the oracle's verdict on an account.
//
// Suspension is reported, not enforced, here: callers check the flag
// themselves so the "not eligible" reasons stay distinguishable.
type Classification struct {
	Kind      id.ParticipantClass `json:"kind"`
	ExpiresAt time.Time           `json:"expires_at"`
	Suspended bool                `json:"suspended"`
}

// Expired reports whether the classification attribute has lapsed at now.
// A classification expiring exactly at now counts as expired.
func (c Classification) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// Client queries the identity oracle. Implementations must fail within a
// bounded time; non-response surfaces as an error wrapping
// sentinel.ErrUnavailable rather than a hang.
type Client interface {
	Classify(ctx context.Context, account id.AccountID) (Classification, error)
}

// Package settings owns the operator-configurable scalars: the fee a payer
// owes per period, the payout a payee draws per period, and the identity
// oracle reference. Mutation requires the administrative capability; reads
// are unrestricted and happen on every gated payment call.
package settings

import "context"

// Settings are the live configuration values. Amounts are in minor currency
// units; zero means "not yet configured".
type Settings struct {
	FeeAmount    int64  `json:"fee_amount"`
	PayoutAmount int64  `json:"payout_amount"`
	OracleRef    string `json:"oracle_ref"`
}

// Store persists the single live Settings value.
type Store interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

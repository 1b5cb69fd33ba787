package domain

import "fmt"

// Period is the accounting cycle a settlement belongs to. Exactly one period
// is live at a time; there is no period history.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Key renders the period in a stable form suitable for composite store keys.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (p Period) String() string { return p.Key() }

// SettlementKind distinguishes the two gated actions a participant can take.
type SettlementKind string

const (
	KindFee    SettlementKind = "fee"
	KindPayout SettlementKind = "payout"
)

func (k SettlementKind) IsValid() bool {
	return k == KindFee || k == KindPayout
}

// ParticipantClass is the identity oracle's verdict on what an account is.
type ParticipantClass string

const (
	ClassPayer ParticipantClass = "payer"
	ClassPayee ParticipantClass = "payee"
	ClassOther ParticipantClass = "other"
)

func (c ParticipantClass) IsValid() bool {
	return c == ClassPayer || c == ClassPayee || c == ClassOther
}

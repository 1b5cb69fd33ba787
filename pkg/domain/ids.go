// Package domain holds the shared domain vocabulary: typed identifiers,
// accounting periods, and participant classification values.
//
// IDs are distinct types over uuid.UUID so the compiler rejects cross-type
// assignment. Parsing enforces the invariant "IDs must be valid, non-empty,
// non-nil UUIDs" at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "bursar/pkg/domain-errors"
)

// AccountID identifies a participant account (payer or payee).
type AccountID uuid.UUID

// NewAccountID returns a fresh random account ID.
func NewAccountID() AccountID { return AccountID(uuid.New()) }

// ParseAccountID parses and validates an account ID from its string form.
func ParseAccountID(s string) (AccountID, error) {
	id, err := parseUUID(s, "account_id")
	return AccountID(id), err
}

func (id AccountID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id AccountID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must be a valid UUID")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be the nil UUID")
	}
	return id, nil
}

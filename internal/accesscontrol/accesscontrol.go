// Package accesscontrol answers the single capability question this system
// has: does an account hold the administrative capability. There is no role
// hierarchy; the capability is flat.
package accesscontrol

import (
	"context"

	id "bursar/pkg/domain"
	dErrors "bursar/pkg/domain-errors"
)

// CapabilityAdmin is the only capability the system defines.
const CapabilityAdmin = "admin"

// Checker reports whether an account holds the administrative capability.
type Checker interface {
	HasAdminCapability(ctx context.Context, account id.AccountID) (bool, error)
}

// StaticChecker grants the capability to a fixed set of accounts loaded from
// configuration.
type StaticChecker struct {
	admins map[id.AccountID]struct{}
}

// NewStaticChecker parses the configured admin account IDs. Invalid entries
// are rejected at construction so a typo fails startup, not a runtime check.
func NewStaticChecker(accountIDs []string) (*StaticChecker, error) {
	admins := make(map[id.AccountID]struct{}, len(accountIDs))
	for _, raw := range accountIDs {
		account, err := id.ParseAccountID(raw)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid admin account id")
		}
		admins[account] = struct{}{}
	}
	return &StaticChecker{admins: admins}, nil
}

func (c *StaticChecker) HasAdminCapability(_ context.Context, account id.AccountID) (bool, error) {
	_, ok := c.admins[account]
	return ok, nil
}

// RequireAdmin translates a failed capability check into the Unauthorized
// domain error, naming the required capability and the caller.
func RequireAdmin(ctx context.Context, checker Checker, actor id.AccountID) error {
	ok, err := checker.HasAdminCapability(ctx, actor)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "capability check failed")
	}
	if !ok {
		return dErrors.Newf(dErrors.CodeUnauthorized,
			"account %s does not hold the %s capability", actor, CapabilityAdmin)
	}
	return nil
}

// Package events defines the structured notifications the core emits for
// external observers. Each notification carries enough data for an observer to
// reconstruct the current settings and period without re-querying.
package events

import (
	"context"
	"log/slog"
	"time"

	"bursar/pkg/requestcontext"
)

// Type names a notification.
type Type string

const (
	TypeFeeAmountChanged       Type = "fee_amount_changed"
	TypePayoutAmountChanged    Type = "payout_amount_changed"
	TypeCurrentMonthChanged    Type = "current_month_changed"
	TypeCurrentYearChanged     Type = "current_year_changed"
	TypeOracleReferenceChanged Type = "oracle_reference_changed"
	TypePaymentReminder        Type = "payment_reminder"
)

// Notification is emitted from domain logic to capture configuration and
// period changes. Keep it transport-agnostic so stores and sinks can fan out.
type Notification struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	// Actor is the admin account that caused the change, when known.
	Actor     string `json:"actor,omitempty"`
	RequestID string `json:"request_id,omitempty"`

	// Payload fields; which are set depends on Type.
	Amount    *int64 `json:"amount,omitempty"`
	Month     *int   `json:"month,omitempty"`
	Year      *int   `json:"year,omitempty"`
	OracleRef string `json:"oracle_ref,omitempty"`
}

func FeeAmountChanged(amount int64) Notification {
	return Notification{Type: TypeFeeAmountChanged, Amount: &amount}
}

func PayoutAmountChanged(amount int64) Notification {
	return Notification{Type: TypePayoutAmountChanged, Amount: &amount}
}

func CurrentMonthChanged(month int) Notification {
	return Notification{Type: TypeCurrentMonthChanged, Month: &month}
}

func CurrentYearChanged(year int) Notification {
	return Notification{Type: TypeCurrentYearChanged, Year: &year}
}

func OracleReferenceChanged(ref string) Notification {
	return Notification{Type: TypeOracleReferenceChanged, OracleRef: ref}
}

// PaymentReminder accompanies month changes so observers can nudge
// participants about the fresh period.
func PaymentReminder(month, year int) Notification {
	return Notification{Type: TypePaymentReminder, Month: &month, Year: &year}
}

// Publisher emits notifications for external observers.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

// Emit is a shared helper: it logs the notification and hands it to the
// publisher if one is configured. Publish failures are logged, not returned;
// a change that already happened must not be rolled back by a sink outage.
func Emit(ctx context.Context, logger *slog.Logger, publisher Publisher, n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = requestcontext.Now(ctx)
	}
	if n.RequestID == "" {
		n.RequestID = requestcontext.RequestID(ctx)
	}

	if logger != nil {
		logger.InfoContext(ctx, string(n.Type),
			"event", string(n.Type),
			"log_type", "notification",
			"request_id", n.RequestID,
		)
	}

	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, n); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to publish notification",
			"event", string(n.Type),
			"error", err,
		)
	}
}

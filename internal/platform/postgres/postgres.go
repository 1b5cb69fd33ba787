// Package postgres opens the shared database handle. Stores consume
// database/sql; pgx is registered as the driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate applies the schema. Idempotent; safe to run at every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
    account_id UUID        NOT NULL,
    period     TEXT        NOT NULL,
    kind       TEXT        NOT NULL,
    settled_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (account_id, period, kind)
);

CREATE TABLE IF NOT EXISTS period_state (
    singleton BOOL PRIMARY KEY DEFAULT TRUE CHECK (singleton),
    month     INT  NOT NULL,
    year      INT  NOT NULL
);

CREATE TABLE IF NOT EXISTS payment_settings (
    singleton     BOOL   PRIMARY KEY DEFAULT TRUE CHECK (singleton),
    fee_amount    BIGINT NOT NULL,
    payout_amount BIGINT NOT NULL,
    oracle_ref    TEXT   NOT NULL
);
`

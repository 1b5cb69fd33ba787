package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"bursar/internal/ledger"
)

// PostgresLedgerStore persists settlement slots in PostgreSQL. The composite
// primary key (account_id, period, kind) makes MarkSettled a natural upsert.
type PostgresLedgerStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{db: db}
}

func (s *PostgresLedgerStore) IsSettled(ctx context.Context, key ledger.Key) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM ledger_entries WHERE account_id = $1 AND period = $2 AND kind = $3`,
		uuid.UUID(key.Account), key.Period.Key(), string(key.Kind),
	).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query ledger entry: %w", err)
	}
	return true, nil
}

func (s *PostgresLedgerStore) MarkSettled(ctx context.Context, key ledger.Key) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (account_id, period, kind)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (account_id, period, kind) DO NOTHING`,
		uuid.UUID(key.Account), key.Period.Key(), string(key.Kind),
	)
	if err != nil {
		return fmt.Errorf("mark ledger entry: %w", err)
	}
	return nil
}

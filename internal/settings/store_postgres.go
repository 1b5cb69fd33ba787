package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore persists the single live settings row in PostgreSQL.
type PostgresStore struct {
	db       *sql.DB
	fallback Settings
}

// NewPostgres constructs a PostgreSQL-backed settings store. The fallback is
// returned until the first Save writes a row.
func NewPostgres(db *sql.DB, fallback Settings) *PostgresStore {
	return &PostgresStore{db: db, fallback: fallback}
}

func (s *PostgresStore) Get(ctx context.Context) (Settings, error) {
	var current Settings
	err := s.db.QueryRowContext(ctx,
		`SELECT fee_amount, payout_amount, oracle_ref FROM payment_settings WHERE singleton`,
	).Scan(&current.FeeAmount, &current.PayoutAmount, &current.OracleRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.fallback, nil
		}
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return current, nil
}

func (s *PostgresStore) Save(ctx context.Context, settings Settings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment_settings (singleton, fee_amount, payout_amount, oracle_ref)
		 VALUES (TRUE, $1, $2, $3)
		 ON CONFLICT (singleton) DO UPDATE
		 SET fee_amount = EXCLUDED.fee_amount,
		     payout_amount = EXCLUDED.payout_amount,
		     oracle_ref = EXCLUDED.oracle_ref`,
		settings.FeeAmount, settings.PayoutAmount, settings.OracleRef,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

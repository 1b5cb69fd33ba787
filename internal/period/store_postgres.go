package period

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	id "bursar/pkg/domain"
)

// PostgresStore persists the single live period row in PostgreSQL.
type PostgresStore struct {
	db       *sql.DB
	fallback id.Period
}

// NewPostgres constructs a PostgreSQL-backed period store. The fallback is
// returned until the first Save writes the row.
func NewPostgres(db *sql.DB, fallback id.Period) *PostgresStore {
	return &PostgresStore{db: db, fallback: fallback}
}

func (s *PostgresStore) Get(ctx context.Context) (id.Period, error) {
	var current id.Period
	err := s.db.QueryRowContext(ctx,
		`SELECT month, year FROM period_state WHERE singleton`,
	).Scan(&current.Month, &current.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.fallback, nil
		}
		return id.Period{}, fmt.Errorf("load period: %w", err)
	}
	return current, nil
}

func (s *PostgresStore) Save(ctx context.Context, p id.Period) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO period_state (singleton, month, year)
		 VALUES (TRUE, $1, $2)
		 ON CONFLICT (singleton) DO UPDATE
		 SET month = EXCLUDED.month, year = EXCLUDED.year`,
		p.Month, p.Year,
	)
	if err != nil {
		return fmt.Errorf("save period: %w", err)
	}
	return nil
}

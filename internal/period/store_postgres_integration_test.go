//go:build integration

package period_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"bursar/internal/period"
	id "bursar/pkg/domain"
	"bursar/pkg/testutil/containers"
)

type PostgresPeriodStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *period.PostgresStore
}

func TestPostgresPeriodStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresPeriodStoreSuite))
}

func (s *PostgresPeriodStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = period.NewPostgres(s.postgres.DB, id.Period{Month: 6, Year: 2024})
}

func (s *PostgresPeriodStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "period_state"))
}

func (s *PostgresPeriodStoreSuite) TestGetBeforeFirstSaveReturnsFallback() {
	current, err := s.store.Get(context.Background())
	s.Require().NoError(err)
	s.Equal(id.Period{Month: 6, Year: 2024}, current)
}

func (s *PostgresPeriodStoreSuite) TestSaveAndReadBack() {
	ctx := context.Background()

	s.Require().NoError(s.store.Save(ctx, id.Period{Month: 7, Year: 2024}))
	got, err := s.store.Get(ctx)
	s.Require().NoError(err)
	s.Equal(id.Period{Month: 7, Year: 2024}, got)

	s.Require().NoError(s.store.Save(ctx, id.Period{Month: 1, Year: 2025}))
	got, err = s.store.Get(ctx)
	s.Require().NoError(err)
	s.Equal(id.Period{Month: 1, Year: 2025}, got)
}

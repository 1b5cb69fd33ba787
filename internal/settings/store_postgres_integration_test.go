//go:build integration

package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"bursar/internal/settings"
	"bursar/pkg/testutil/containers"
)

type PostgresSettingsStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *settings.PostgresStore
}

func TestPostgresSettingsStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSettingsStoreSuite))
}

func (s *PostgresSettingsStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = settings.NewPostgres(s.postgres.DB, settings.Settings{FeeAmount: 100, PayoutAmount: 500, OracleRef: "http://oracle.local"})
}

func (s *PostgresSettingsStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "payment_settings"))
}

func (s *PostgresSettingsStoreSuite) TestGetBeforeFirstSaveReturnsFallback() {
	current, err := s.store.Get(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(100), current.FeeAmount)
	s.Equal(int64(500), current.PayoutAmount)
	s.Equal("http://oracle.local", current.OracleRef)
}

func (s *PostgresSettingsStoreSuite) TestSaveAndReadBack() {
	ctx := context.Background()
	want := settings.Settings{FeeAmount: 250, PayoutAmount: 750, OracleRef: "http://oracle-v2.local"}

	s.Require().NoError(s.store.Save(ctx, want))

	got, err := s.store.Get(ctx)
	s.Require().NoError(err)
	s.Equal(want, got)

	// The row is a singleton: a second save overwrites, never duplicates.
	want.FeeAmount = 300
	s.Require().NoError(s.store.Save(ctx, want))
	got, err = s.store.Get(ctx)
	s.Require().NoError(err)
	s.Equal(int64(300), got.FeeAmount)
}

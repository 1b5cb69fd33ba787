package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "bursar/pkg/domain"
	dErrors "bursar/pkg/domain-errors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", "bursar", "bursar-api")
	account := id.AccountID(uuid.New())

	t.Run("valid token carries the account", func(t *testing.T) {
		tok, err := svc.GenerateAccessToken(account, time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(tok)
		require.NoError(t, err)
		assert.Equal(t, account.String(), claims.AccountID)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		tok, err := svc.GenerateAccessToken(account, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(tok)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("token signed with a different key rejected", func(t *testing.T) {
		other := NewService("other-key", "bursar", "bursar-api")
		tok, err := other.GenerateAccessToken(account, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(tok)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		require.Error(t, err)
	})
}

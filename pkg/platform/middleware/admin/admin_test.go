package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bursar/pkg/secrets"
)

func TestRequireAdminToken(t *testing.T) {
	hash, err := secrets.Hash("operator-token")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var reached bool
	handler := RequireAdminToken(hash, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token passes through", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPut, "/admin/settings/fee", nil)
		req.Header.Set("X-Admin-Token", "operator-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.True(t, reached)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPut, "/admin/settings/fee", nil)
		req.Header.Set("X-Admin-Token", "guess")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPut, "/admin/settings/fee", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

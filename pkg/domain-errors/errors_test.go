package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches the outer code", func(t *testing.T) {
		err := New(CodeConflict, "slot already settled")
		assert.True(t, HasCode(err, CodeConflict))
		assert.False(t, HasCode(err, CodeValidation))
	})

	t.Run("matches a wrapped code", func(t *testing.T) {
		inner := New(CodeConflict, "duplicate key")
		outer := Wrap(inner, CodeInternal, "store write failed")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeConflict))
	})

	t.Run("sees through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("pipeline: %w", New(CodeForbidden, "suspended"))
		assert.True(t, HasCode(err, CodeForbidden))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil yields nil", func(t *testing.T) {
		require.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("preserves the cause chain", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeUnavailable, "oracle call failed")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "oracle call failed")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeValidation, GetCode(New(CodeValidation, "zero amount")))
	assert.Equal(t, CodeInternal, GetCode(errors.New("plain")))
}

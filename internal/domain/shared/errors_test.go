package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorIs(t *testing.T) {
	t.Run("detailed error matches its sentinel by code", func(t *testing.T) {
		err := NewDomainError("INSUFFICIENT_STOCK", `Insufficient stock for "Classic Tee"`)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("different codes do not match", func(t *testing.T) {
		err := NewDomainError("INSUFFICIENT_STOCK", "out of stock")
		assert.False(t, errors.Is(err, ErrNotFound))
	})

	t.Run("wrapped sentinel still matches", func(t *testing.T) {
		err := fmt.Errorf("placing order: %w", ErrTotalMismatch)
		assert.ErrorIs(t, err, ErrTotalMismatch)
	})

	t.Run("plain errors never match", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("boom"), ErrNotFound))
	})
}

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldError(t *testing.T) {
	err := Required("purpose")

	assert.EqualError(t, err, "purpose is required")
	assert.ErrorIs(t, err, ErrValidation)

	var fe *FieldError
	wrapped := fmt.Errorf("create request: %w", err)
	assert.True(t, errors.As(wrapped, &fe))
	assert.Equal(t, "purpose", fe.Field)
}

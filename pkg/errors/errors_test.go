package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	typed := Clone(ErrNotFound, "student not found")
	wrapped := fmt.Errorf("lookup: %w", typed)

	got := FromError(wrapped)
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "student not found", got.Message)
}

func TestFromErrorHidesUntypedCause(t *testing.T) {
	got := FromError(errors.New("pq: connection refused"))
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, ErrInternal.Message, got.Message)
	assert.EqualError(t, got.Err, "pq: connection refused")
}

func TestIsMatchesByCode(t *testing.T) {
	err := Clone(ErrConflict, "email already registered")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestWithDetailsDoesNotMutateCatalogue(t *testing.T) {
	err := WithDetails(ErrValidation, "invalid payload", map[string]string{"email": "email is required"})
	assert.Equal(t, "email is required", err.Details["email"])
	assert.Nil(t, ErrValidation.Details)
	assert.Equal(t, "validation failed", ErrValidation.Message)
}

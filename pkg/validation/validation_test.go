package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

type payload struct {
	FirstName string `json:"firstName" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,email"`
	Capacity  int    `json:"maxCapacity" validate:"gt=0"`
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	v := New()
	err := v.Struct(payload{FirstName: "   ", Email: "nope", Capacity: 0})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "firstName must not be blank", appErr.Details["firstName"])
	assert.Equal(t, "email must be a valid email address", appErr.Details["email"])
	assert.Contains(t, appErr.Details, "maxCapacity")
}

func TestStructRequired(t *testing.T) {
	err := New().Struct(payload{Capacity: 1})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "firstName is required", appErr.Details["firstName"])
}

func TestStructPasses(t *testing.T) {
	assert.NoError(t, New().Struct(payload{FirstName: "Ana", Email: "ana@example.com", Capacity: 10}))
}

func TestVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("q", "ana", "required,min=1"))
	err := v.Var("q", "", "required")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details, "q")
}

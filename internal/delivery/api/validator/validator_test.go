package validator

import (
	"testing"

	domainerrors "cadastre/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"required,max=5"`
	Email string  `json:"email" validate:"omitempty,email"`
	Lat   float64 `json:"latitude" validate:"gte=-90,lte=90"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Name: "ok", Lat: 10}))

	err := v.Validate(&sample{Email: "nope", Lat: 100})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "name is required; email must be a valid email address; latitude must be less than or equal to 90", appErr.Details())
}

func TestValidator_MaxLength(t *testing.T) {
	err := New().Validate(&sample{Name: "toolong"})

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "name must be at most 5 characters", appErr.Details())
}

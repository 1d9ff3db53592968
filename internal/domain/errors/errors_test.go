package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	detailed := ErrPaymentExceedsBalance.WithDetails("remaining balance is 100.00")

	assert.True(t, stderrors.Is(detailed, ErrPaymentExceedsBalance))
	assert.False(t, stderrors.Is(detailed, ErrInvalidAmount))
	assert.Equal(t, "remaining balance is 100.00", detailed.Details())
	assert.Equal(t, http.StatusBadRequest, detailed.HTTPCode())
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	wrapped := errors.Wrap(ErrRoleInUse.WrapMessage("role admin"), "delete role")

	var appErr AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "ROLE_IN_USE", appErr.ErrorCode())
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.True(t, stderrors.Is(wrapped, ErrRoleInUse))
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to create property")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, "failed to create property", err.Details())
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
}

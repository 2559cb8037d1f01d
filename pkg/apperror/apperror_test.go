package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesWrappedCopies(t *testing.T) {
	err := ErrInsufficientBalance.Withf("requested %d, available %d", 1000, 0)

	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.False(t, errors.Is(err, ErrBelowMinimum))

	wrapped := fmt.Errorf("request payout: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInsufficientBalance))
}

func TestError_Wrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := ErrDuplicateRequest.Wrap("payout already pending", cause)

	assert.True(t, errors.Is(err, ErrDuplicateRequest))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrZeroAmount))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrInvalidState))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrNotApproved))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrPayoutNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrDuplicateRequest))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(ErrDuplicateRequest, KindConflict))
	assert.False(t, IsKind(errors.New("boom"), KindConflict))
}

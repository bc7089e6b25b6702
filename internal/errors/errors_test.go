package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusConflict},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	err := NotFoundf("grocery list %s not found", "gl-1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)

	wrapped := fmt.Errorf("load list: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)

	var domainErr *Error
	require.True(t, As(wrapped, &domainErr))
	assert.Equal(t, CodeNotFound, domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus())
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, CodeInternal, "save list")

	assert.Equal(t, "save list: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)

	err = Wrapf(cause, CodeConflict, "recipe %d", 3)
	assert.Equal(t, "recipe 3: disk full", err.Error())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestWithDetails_Copies(t *testing.T) {
	base := Validation("invalid request")
	detailed := base.WithDetails(map[string]string{"name": "is required"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"name": "is required"}, detailed.Details)
	assert.ErrorIs(t, detailed, ErrValidation)

	withCause := detailed.WithCause(errors.New("boom"))
	assert.Equal(t, detailed.Details, withCause.Details)
	assert.Equal(t, "invalid request: boom", withCause.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		code Code
	}{
		{"not found", NotFound("x"), CodeNotFound},
		{"invalid argument", InvalidArgumentf("no live recipes in %v", []int64{1}), CodeInvalidArgument},
		{"validation", ValidationWithDetails("bad", nil), CodeValidation},
		{"conflict", Conflict("dup"), CodeConflict},
		{"rate limited", RateLimited("slow down"), CodeRateLimited},
		{"internal", Internal("oops"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NoError(t, tt.err.Unwrap())
		})
	}
}

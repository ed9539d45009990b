package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{TooManyRequests("slow"), http.StatusTooManyRequests},
		{Internal("boom", errors.New("cause")), http.StatusInternalServerError},
		{New(Kind("OTHER"), "unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestAsAndIs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading todo: %w", NotFound("Todo not found"))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Todo not found", appErr.Message)
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindConflict))

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("Internal server error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error: connection reset", err.Error())
}

package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "app error", err: New(CodeNotFound, "video not found"), want: CodeNotFound},
		{name: "wrapped app error", err: fmt.Errorf("outer: %w", New(CodeConflict, "taken")), want: CodeConflict},
		{name: "deadline", err: context.DeadlineExceeded, want: CodeStore},
		{name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), want: CodeStore},
		{name: "plain error", err: assert.AnError, want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{CodeInvalidArg, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeForbidden, http.StatusForbidden},
		{CodeStore, http.StatusServiceUnavailable},
		{CodeIntegrity, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
		{CodeExternal, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(New(tt.code, "x")))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	cause := fmt.Errorf("dial tcp 10.0.0.3:5432: connection refused")

	assert.Equal(t, "video not found", PublicMessage(Wrap(cause, CodeNotFound, "video not found")))
	assert.NotContains(t, PublicMessage(Wrap(cause, CodeStore, "failed to list videos")), "10.0.0.3")
	assert.Equal(t, "internal server error", PublicMessage(Wrap(cause, CodeIntegrity, "comment owner missing")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Wrap(assert.AnError, CodeStore, "timeout")))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(New(CodeInvalidArg, "bad id")))
	assert.False(t, IsRetryable(nil))
}

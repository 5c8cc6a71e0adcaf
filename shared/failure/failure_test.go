package failure_test

import (
	"bookingpay/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "missing payment_id",
	}

	assert.Equal(t, "missing payment_id", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("validation failed")),
			code:    http.StatusBadRequest,
			message: "validation failed",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("missing payment_id"),
			code:    http.StatusBadRequest,
			message: "missing payment_id",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "internal error",
			err:     failure.InternalError(errors.New("database connection failed")),
			code:    http.StatusInternalServerError,
			message: "database connection failed",
		},
		{
			name:    "not found",
			err:     failure.NotFound("payment not found"),
			code:    http.StatusNotFound,
			message: "payment not found",
		},
		{
			name:    "payload too large",
			err:     failure.PayloadTooLarge("payload too large"),
			code:    http.StatusRequestEntityTooLarge,
			message: "payload too large",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("email already exists"),
			code:    http.StatusConflict,
			message: "email already exists",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("access denied"),
			code:    http.StatusForbidden,
			message: "access denied",
		},
		{
			name:    "bad gateway",
			err:     failure.BadGateway("invalid customer email"),
			code:    http.StatusBadGateway,
			message: "invalid customer email",
		},
		{
			name:    "configuration",
			err:     failure.Configuration("payadvantage credentials are not configured"),
			code:    http.StatusInternalServerError,
			message: "payadvantage credentials are not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			assert.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestNilConstructors(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to apply notification: %w", failure.NotFound("payment not found")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", failure.BadGateway("provider down"))

	assert.True(t, failure.Is(err, http.StatusBadGateway))
	assert.False(t, failure.Is(err, http.StatusNotFound))
	assert.False(t, failure.Is(errors.New("plain"), http.StatusBadGateway))
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInvalidArg = "INVALID_ARGUMENT"
	CodeExternal   = "EXTERNAL_ERROR"
	CodeConflict   = "CONFLICT"        // Resource already exists (UNIQUE violation)
	CodeForbidden  = "FORBIDDEN"       // Actor does not own the resource
	CodeStore      = "STORE_ERROR"     // Connectivity, timeout or cancellation; safe to retry
	CodeIntegrity  = "INTEGRITY_ERROR" // A relation that must resolve did not
)

// CodeOf returns the code of the first AppError in err's chain.
// Context deadline and cancellation are reported as CodeStore.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CodeStore
	}
	return CodeInternal
}

// Is reports whether err carries the given code
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// IsRetryable reports whether the caller may retry the operation with backoff
func IsRetryable(err error) bool {
	return Is(err, CodeStore)
}

// StatusCode maps an error to its HTTP-style status code
func StatusCode(err error) int {
	switch CodeOf(err) {
	case "":
		return http.StatusOK
	case CodeInvalidArg:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeStore:
		return http.StatusServiceUnavailable
	case CodeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to a caller.
// Store, integrity and internal faults never expose their detail.
func PublicMessage(err error) string {
	switch CodeOf(err) {
	case CodeStore:
		return "service temporarily unavailable, please retry"
	case CodeIntegrity, CodeInternal:
		return "internal server error"
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

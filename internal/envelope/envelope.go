// Package envelope renders operation results in the response envelope shared
// by every caller-facing surface.
package envelope

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
)

// Success wraps a successful result
type Success struct {
	StatusCode int    `json:"status_code"`
	Payload    any    `json:"payload"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// Failure wraps an error. Message never carries store or integrity detail.
type Failure struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// OK builds a 200 envelope
func OK(payload any, message string) Success {
	return Success{StatusCode: http.StatusOK, Payload: payload, Message: message, Success: true}
}

// Created builds a 201 envelope
func Created(payload any, message string) Success {
	return Success{StatusCode: http.StatusCreated, Payload: payload, Message: message, Success: true}
}

// Fail builds the envelope for err. Faults the caller cannot act on are logged
// with their cause before being masked.
func Fail(err error) Failure {
	code := apperrors.CodeOf(err)
	switch code {
	case apperrors.CodeStore, apperrors.CodeInternal, apperrors.CodeExternal:
		logrus.WithError(err).WithField("code", code).Error("operation failed")
	}
	return Failure{
		StatusCode: apperrors.StatusCode(err),
		Message:    apperrors.PublicMessage(err),
	}
}

// Write encodes v as indented JSON
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

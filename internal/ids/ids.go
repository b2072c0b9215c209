// Package ids parses and mints entity identifiers.
package ids

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
)

// New returns a fresh random identifier
func New() uuid.UUID {
	return uuid.New()
}

// Parse validates a client-supplied identifier. field names the argument in the error message.
func Parse(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperrors.New(apperrors.CodeInvalidArg, field+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperrors.Wrap(err, apperrors.CodeInvalidArg, "invalid "+field)
	}
	return id, nil
}

// Strings converts ids to their text form for ANY($1::uuid[]) arguments
func Strings(list []uuid.UUID) []string {
	out := make([]string, len(list))
	for i, id := range list {
		out[i] = id.String()
	}
	return out
}

package common

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
)

// Outcome is the effect of one edge toggle statement
type Outcome int

const (
	// Raced means a concurrent toggle inserted the same edge first; nothing changed
	Raced Outcome = iota
	Added
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "raced"
	}
}

// ToggleResult reports what an edge toggle statement did
type ToggleResult struct {
	Outcome Outcome
	EdgeID  uuid.UUID // set when Outcome is Added
}

// ScanToggle reads the (removed count, added id) row returned by an edge toggle
func ScanToggle(row pgx.Row, operation string) (ToggleResult, error) {
	var removed int64
	var added string
	if err := row.Scan(&removed, &added); err != nil {
		return ToggleResult{}, HandlePostgreSQLError(err, operation)
	}

	switch {
	case removed > 0:
		return ToggleResult{Outcome: Removed}, nil
	case added != "":
		id, err := uuid.Parse(added)
		if err != nil {
			return ToggleResult{}, apperrors.Wrap(err, apperrors.CodeInternal, operation)
		}
		return ToggleResult{Outcome: Added, EdgeID: id}, nil
	default:
		return ToggleResult{Outcome: Raced}, nil
	}
}

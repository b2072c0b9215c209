package common

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
)

// HandlePostgreSQLError converts PostgreSQL-specific errors to appropriate AppError codes
func HandlePostgreSQLError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if isTransient(err) {
		return apperrors.Wrap(err, apperrors.CodeStore, operation)
	}

	// Check if it's a PostgreSQL error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		// Not a PostgreSQL error, return generic internal error
		return apperrors.Wrap(err, apperrors.CodeInternal, operation)
	}

	// Map PostgreSQL error codes to AppError codes
	switch pgErr.Code {
	case "23505": // UNIQUE_VIOLATION
		return handleUniqueViolation(pgErr)

	case "23503": // FOREIGN_KEY_VIOLATION
		return handleForeignKeyViolation(pgErr)

	case "23502": // NOT_NULL_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "required field is missing")

	case "23514": // CHECK_VIOLATION
		return handleCheckViolation(pgErr)

	case "22P02": // INVALID_TEXT_REPRESENTATION
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "malformed identifier")

	case "42P01": // UNDEFINED_TABLE
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error: table not found")

	case "42703": // UNDEFINED_COLUMN
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error: column not found")

	case "53300": // TOO_MANY_CONNECTIONS
		return apperrors.Wrap(err, apperrors.CodeStore, "database connection limit reached")

	case "57014": // QUERY_CANCELED (statement_timeout)
		return apperrors.Wrap(err, apperrors.CodeStore, "database statement timed out")

	case "40001", "40P01": // SERIALIZATION_FAILURE, DEADLOCK_DETECTED
		return apperrors.Wrap(err, apperrors.CodeStore, "concurrent update, please retry")

	default:
		if strings.HasPrefix(pgErr.Code, "08") { // CONNECTION_EXCEPTION class
			return apperrors.Wrap(err, apperrors.CodeStore, "database connection error")
		}
		// Unknown PostgreSQL error, return with error code for debugging
		message := "database error (PostgreSQL code: " + pgErr.Code + ")"
		return apperrors.Wrap(err, apperrors.CodeInternal, message)
	}
}

// isTransient reports connectivity, timeout and cancellation failures
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// handleUniqueViolation provides specific error messages for different unique constraints
func handleUniqueViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	constraintName := pgErr.ConstraintName

	switch {
	case strings.Contains(constraintName, "username"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "username is already taken")

	case strings.Contains(constraintName, "email"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "email is already registered")

	case strings.Contains(constraintName, "pkey"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "resource with this ID already exists")

	default:
		// Generic unique violation
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "resource already exists")
	}
}

// handleForeignKeyViolation provides specific error messages for foreign key constraints.
// A missing referenced row means the caller addressed something that does not exist;
// a RESTRICT on delete means the row is still referenced.
func handleForeignKeyViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	constraintName := pgErr.ConstraintName

	if strings.Contains(pgErr.Message, "still referenced") {
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "resource is still referenced by other records")
	}

	switch {
	case strings.Contains(constraintName, "owner_id"), strings.Contains(constraintName, "user_id"),
		strings.Contains(constraintName, "subscriber_id"), strings.Contains(constraintName, "channel_id"),
		strings.Contains(constraintName, "liked_by"):
		return apperrors.Wrap(pgErr, apperrors.CodeNotFound, "referenced user does not exist")

	case strings.Contains(constraintName, "video_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeNotFound, "referenced video does not exist")

	case strings.Contains(constraintName, "comment_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeNotFound, "referenced comment does not exist")

	case strings.Contains(constraintName, "tweet_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeNotFound, "referenced tweet does not exist")

	default:
		return apperrors.Wrap(pgErr, apperrors.CodeNotFound, "referenced resource does not exist")
	}
}

func handleCheckViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	if strings.Contains(pgErr.ConstraintName, "self") {
		return apperrors.Wrap(pgErr, apperrors.CodeInvalidArg, "cannot subscribe to your own channel")
	}
	return apperrors.Wrap(pgErr, apperrors.CodeInvalidArg, "data violates check constraint")
}

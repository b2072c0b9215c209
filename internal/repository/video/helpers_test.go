package video

import "github.com/jackc/pgx/v5/pgconn"

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint, Message: "violates foreign key constraint"}
}

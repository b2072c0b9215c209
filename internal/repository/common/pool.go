package common

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the subset of *pgxpool.Pool used by repositories.
// pgxmock.PgxPoolIface satisfies it in unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Close()
}

// Querier runs statements either on the pool or inside a transaction
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InTx runs fn inside a transaction and commits when fn returns nil.
// Any error from fn rolls the transaction back and is returned unchanged.
func InTx(ctx context.Context, pool Pool, operation string, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return HandlePostgreSQLError(err, "failed to begin transaction: "+operation)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return HandlePostgreSQLError(err, "failed to commit transaction: "+operation)
	}
	return nil
}

// ReadSnapshot makes every statement of a transaction read the same data
var ReadSnapshot = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// InSnapshot runs fn inside a read-only REPEATABLE READ transaction.
// Errors from fn are returned unchanged.
func InSnapshot(ctx context.Context, pool Pool, operation string, fn func(tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, ReadSnapshot)
	if err != nil {
		return HandlePostgreSQLError(err, operation)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return HandlePostgreSQLError(err, operation)
	}
	return nil
}

package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

// Filter accumulates WHERE predicates. Predicates are static SQL written by the
// caller with ? standing in for each bound argument.
type Filter struct {
	clauses []string
	args    []any
}

// Where adds a predicate joined with AND
func (f *Filter) Where(clause string, args ...any) *Filter {
	var b strings.Builder
	next := 0
	for _, r := range clause {
		if r == '?' && next < len(args) {
			f.args = append(f.args, args[next])
			next++
			fmt.Fprintf(&b, "$%d", len(f.args))
			continue
		}
		b.WriteRune(r)
	}
	f.clauses = append(f.clauses, b.String())
	return f
}

// SQL renders the WHERE clause, or "" when there are no predicates
func (f *Filter) SQL() string {
	if f == nil || len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// Args returns the bound arguments in placeholder order
func (f *Filter) Args() []any {
	if f == nil {
		return nil
	}
	return f.args
}

// Join resolves relations of a window's items on the transaction that read
// them. It also runs for an empty window.
type Join[T any] func(ctx context.Context, q common.Querier, items []T) error

// Query is a windowed listing: FROM/JOIN body, selected columns and a row scanner
type Query[T any] struct {
	From    string
	Columns string
	Filter  *Filter
	Scan    func(row pgx.Rows) (T, error)
	Join    Join[T]
}

// CountSQL renders the total-count statement
func (q Query[T]) CountSQL() string {
	return "SELECT count(*) FROM " + q.From + q.Filter.SQL()
}

// WindowSQL renders the windowed select; LIMIT and OFFSET follow the filter arguments
func (q Query[T]) WindowSQL(w Window) string {
	n := len(q.Filter.Args())
	return fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		q.Columns, q.From, q.Filter.SQL(), w.OrderBy(), n+1, n+2)
}

// Fetch runs the count, the window and the join in one read-only snapshot and
// builds the page. A window past the last page yields empty items without querying rows.
func Fetch[T any](ctx context.Context, pool common.Pool, q Query[T], w Window, operation string) (*Page[T], error) {
	var (
		total int64
		items = []T{}
	)
	err := common.InSnapshot(ctx, pool, operation, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, q.CountSQL(), q.Filter.Args()...).Scan(&total); err != nil {
			return common.HandlePostgreSQLError(err, operation)
		}

		if w.Offset >= 0 && total > int64(w.Offset) {
			args := append(append([]any{}, q.Filter.Args()...), w.Limit, w.Offset)
			rows, err := tx.Query(ctx, q.WindowSQL(w), args...)
			if err != nil {
				return common.HandlePostgreSQLError(err, operation)
			}
			defer rows.Close()

			for rows.Next() {
				item, err := q.Scan(rows)
				if err != nil {
					return common.HandlePostgreSQLError(err, operation)
				}
				items = append(items, item)
			}
			if err := rows.Err(); err != nil {
				return common.HandlePostgreSQLError(err, operation)
			}
			rows.Close()
		}

		if q.Join != nil {
			return q.Join(ctx, tx, items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return New(items, w, total), nil
}

package page

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

type item struct {
	ID   string
	Rank int
}

func itemQuery() Query[item] {
	return Query[item]{
		From:    "items i",
		Columns: "i.id, i.rank",
		Filter:  (&Filter{}).Where("i.owner = ?", "owner-1"),
		Scan: func(row pgx.Rows) (item, error) {
			var it item
			err := row.Scan(&it.ID, &it.Rank)
			return it, err
		},
	}
}

var itemSpec = Spec{
	DefaultLimit: 2,
	DefaultSort:  "rank",
	Sorts:        map[string]string{"rank": "i.rank"},
	IDColumn:     "i.id",
}

func TestQuery_SQL(t *testing.T) {
	q := itemQuery()
	w, err := itemSpec.Resolve(Params{Page: 2})
	require.NoError(t, err)

	assert.Equal(t, "SELECT count(*) FROM items i WHERE i.owner = $1", q.CountSQL())
	assert.Equal(t, "SELECT i.id, i.rank FROM items i WHERE i.owner = $1 ORDER BY i.rank DESC, i.id ASC LIMIT $2 OFFSET $3", q.WindowSQL(w))
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		setup     func(mock pgxmock.PgxPoolIface)
		wantItems []item
		wantTotal int64
		wantPages int64
		wantCode  string
	}{
		{
			name:   "first page",
			params: Params{Page: 1},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
				mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM items i WHERE i.owner = $1")).
					WithArgs("owner-1").
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
				mock.ExpectQuery(regexp.QuoteMeta("ORDER BY i.rank DESC, i.id ASC LIMIT $2 OFFSET $3")).
					WithArgs("owner-1", 2, 0).
					WillReturnRows(pgxmock.NewRows([]string{"id", "rank"}).AddRow("e", 5).AddRow("d", 4))
				mock.ExpectCommit()
			},
			wantItems: []item{{"e", 5}, {"d", 4}},
			wantTotal: 5,
			wantPages: 3,
		},
		{
			name:   "page beyond the last returns empty items",
			params: Params{Page: 4},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
				mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM items i")).
					WithArgs("owner-1").
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
				mock.ExpectCommit()
			},
			wantItems: []item{},
			wantTotal: 5,
			wantPages: 3,
		},
		{
			name:   "huge page returns empty items",
			params: Params{Page: math.MaxInt},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
				mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM items i")).
					WithArgs("owner-1").
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
				mock.ExpectCommit()
			},
			wantItems: []item{},
			wantTotal: 5,
			wantPages: 3,
		},
		{
			name:   "count timeout is a store fault",
			params: Params{},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
				mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM items i")).
					WithArgs("owner-1").
					WillReturnError(context.DeadlineExceeded)
				mock.ExpectRollback()
			},
			wantCode: apperrors.CodeStore,
		},
		{
			name:   "begin failure",
			params: Params{},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}).
					WillReturnError(assert.AnError)
			},
			wantCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			w, err := itemSpec.Resolve(tt.params)
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := Fetch(ctx, mock, itemQuery(), w, "failed to list items")

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantItems, got.Items)
				assert.Equal(t, tt.wantTotal, got.TotalCount)
				assert.Equal(t, tt.wantPages, got.TotalPages)
				assert.LessOrEqual(t, len(got.Items), got.Limit)
			}

			err = mock.ExpectationsWereMet()
			assert.NoError(t, err, "pgxmock expectations were not met")
		})
	}
}

// TestFetch_CoversDatasetOnce walks every page of a dataset with duplicate sort
// keys and checks that each row appears exactly once.
func TestFetch_CoversDatasetOnce(t *testing.T) {
	// Already in "rank DESC, id ASC" order, as the store would return it.
	dataset := []item{
		{"a", 9}, {"b", 9}, {"c", 9}, {"d", 7}, {"e", 7}, {"f", 3}, {"g", 1},
	}
	const limit = 3

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	totalPages := (len(dataset) + limit - 1) / limit
	for pageNo := 1; pageNo <= totalPages+1; pageNo++ {
		offset := (pageNo - 1) * limit
		mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*)")).
			WithArgs("owner-1").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(len(dataset))))
		if offset < len(dataset) {
			rows := pgxmock.NewRows([]string{"id", "rank"})
			for _, it := range dataset[offset:min(offset+limit, len(dataset))] {
				rows.AddRow(it.ID, it.Rank)
			}
			mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
				WithArgs("owner-1", limit, offset).
				WillReturnRows(rows)
		}
		mock.ExpectCommit()
	}

	seen := map[string]int{}
	total := 0
	for pageNo := 1; pageNo <= totalPages+1; pageNo++ {
		w, err := itemSpec.Resolve(Params{Page: pageNo, Limit: limit})
		require.NoError(t, err)

		got, err := Fetch(context.Background(), mock, itemQuery(), w, "failed to list items")
		require.NoError(t, err)
		assert.Equal(t, int64(totalPages), got.TotalPages, fmt.Sprintf("page %d", pageNo))

		if pageNo == totalPages+1 {
			assert.Empty(t, got.Items)
			continue
		}
		for _, it := range got.Items {
			seen[it.ID]++
		}
		total += len(got.Items)
	}

	assert.Equal(t, len(dataset), total)
	for _, it := range dataset {
		assert.Equal(t, 1, seen[it.ID], "row %s", it.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
}

func TestFetch_JoinRunsInsideSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		setup    func(mock pgxmock.PgxPoolIface)
		joinErr  error
		wantSeen []item
		wantCode string
	}{
		{
			name:   "join reads before commit",
			params: Params{Page: 1},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
				mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM items i")).
					WithArgs("owner-1").
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
				mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
					WithArgs("owner-1", 2, 0).
					WillReturnRows(pgxmock.NewRows([]string{"id", "rank"}).AddRow("a", 1))
				mock.ExpectQuery(regexp.QuoteMeta("SELECT label FROM labels WHERE id = $1")).
					WithArgs("a").
					WillReturnRows(pgxmock.NewRows([]string{"label"}).AddRow("first"))
				mock.ExpectCommit()
			},
			wantSeen: []item{{"a", 1}},
		},
		{
			name:   "join runs for an empty window",
			params: Params{Page: 9},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
				mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM items i")).
					WithArgs("owner-1").
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
				mock.ExpectCommit()
			},
			wantSeen: []item{},
		},
		{
			name:   "join error rolls back and is returned unchanged",
			params: Params{Page: 9},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
				mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM items i")).
					WithArgs("owner-1").
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
				mock.ExpectRollback()
			},
			joinErr:  apperrors.New(apperrors.CodeIntegrity, "label missing"),
			wantSeen: []item{},
			wantCode: apperrors.CodeIntegrity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			var (
				seen   []item
				labels []string
			)
			q := itemQuery()
			q.Join = func(ctx context.Context, db common.Querier, items []item) error {
				seen = items
				if tt.joinErr != nil {
					return tt.joinErr
				}
				for _, it := range items {
					var label string
					if err := db.QueryRow(ctx, "SELECT label FROM labels WHERE id = $1", it.ID).Scan(&label); err != nil {
						return err
					}
					labels = append(labels, label)
				}
				return nil
			}

			w, err := itemSpec.Resolve(tt.params)
			require.NoError(t, err)

			got, err := Fetch(context.Background(), mock, q, w, "failed to list items")
			assert.Equal(t, tt.wantSeen, seen)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Len(t, labels, len(got.Items))
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

package tweet

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
)

var (
	tweetID = uuid.MustParse("7e7e7e7e-0000-4000-8000-000000000001")
	ownerID = uuid.MustParse("0a0a0a0a-0000-4000-8000-000000000002")
	posted  = time.Date(2024, 4, 4, 4, 4, 4, 0, time.UTC)
)

var tweetColumns = []string{"id", "owner_id", "content", "created_at", "updated_at"}

func TestTweetRepository_CRUD(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO tweets").
		WithArgs(tweetID, ownerID, "hello").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(posted, posted))
	mock.ExpectQuery(regexp.QuoteMeta("FROM tweets WHERE id = $1")).
		WithArgs(tweetID).
		WillReturnRows(pgxmock.NewRows(tweetColumns).AddRow(tweetID.String(), ownerID.String(), "hello", posted, posted))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tweets SET content = $2")).
		WithArgs(tweetID, "bye").
		WillReturnRows(pgxmock.NewRows(tweetColumns).AddRow(tweetID.String(), ownerID.String(), "bye", posted, posted))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tweets WHERE id = $1")).
		WithArgs(tweetID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewRepository(mock)
	ctx := context.Background()

	tw := &model.Tweet{ID: tweetID, OwnerID: ownerID, Content: "hello"}
	require.NoError(t, repo.Create(ctx, tw))
	assert.Equal(t, posted, tw.CreatedAt)

	got, err := repo.GetByID(ctx, tweetID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)

	got, err = repo.UpdateContent(ctx, tweetID, "bye")
	require.NoError(t, err)
	assert.Equal(t, "bye", got.Content)

	require.NoError(t, repo.Delete(ctx, tweetID))

	assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
}

func TestTweetRepository_GetByID_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "not found", err: pgx.ErrNoRows, wantCode: apperrors.CodeNotFound},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: apperrors.CodeStore},
		{name: "unexpected", err: errors.New("boom"), wantCode: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery("FROM tweets WHERE id").WithArgs(tweetID).WillReturnError(tt.err)

			_, err = NewRepository(mock).GetByID(context.Background(), tweetID)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestTweetRepository_ListByOwner_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM tweets t WHERE t.owner_id = $1")).
		WithArgs(ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectCommit()

	w, err := Sorts.Resolve(page.Params{})
	require.NoError(t, err)

	got, err := NewRepository(mock).ListByOwner(context.Background(), ownerID, w)
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, int64(0), got.TotalPages)

	assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
}

package comment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	commentrepo "github.com/Taichi-iskw/vidshare/internal/repository/comment"
	"github.com/Taichi-iskw/vidshare/internal/repository/mocks"
	"github.com/Taichi-iskw/vidshare/internal/resolver"
)

var (
	alice     = uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000001")
	bob       = uuid.MustParse("bbbbbbbb-0000-4000-8000-000000000002")
	videoID   = uuid.MustParse("11111111-0000-4000-8000-000000000001")
	commentID = uuid.MustParse("c0c0c0c0-0000-4000-8000-000000000001")
	posted    = time.Date(2024, 9, 9, 9, 0, 0, 0, time.UTC)
)

func newTestService(t *testing.T) (*mocks.CommentRepository, pgxmock.PgxPoolIface, Service) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	comments := &mocks.CommentRepository{}
	return comments, db, NewService(comments, resolver.New(db))
}

func expectUsers(db pgxmock.PgxPoolIface, users ...uuid.UUID) {
	args := make([]string, len(users))
	rows := pgxmock.NewRows([]string{"id", "username", "avatar_ref"})
	for i, u := range users {
		args[i] = u.String()
		rows.AddRow(u.String(), "user-"+u.String()[:4], "")
	}
	db.ExpectQuery(regexp.QuoteMeta("SELECT id, username, avatar_ref FROM users WHERE id = ANY($1::uuid[])")).
		WithArgs(args).
		WillReturnRows(rows)
}

func TestAddComment(t *testing.T) {
	comments, db, svc := newTestService(t)

	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
		return c.VideoID == videoID && c.OwnerID == alice && c.Content == "great video"
	})).Return(nil)
	expectUsers(db, alice)

	got, err := svc.AddComment(context.Background(), alice, videoID.String(), "  great video ")
	require.NoError(t, err)
	assert.Equal(t, "user-aaaa", got.Owner.Username)

	_, err = svc.AddComment(context.Background(), alice, videoID.String(), "   ")
	assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))

	comments.AssertNumberOfCalls(t, "Create", 1)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestUpdateAndDeleteComment_OwnerOnly(t *testing.T) {
	comments, db, svc := newTestService(t)

	comments.On("GetByID", mock.Anything, commentID).
		Return(&model.Comment{ID: commentID, VideoID: videoID, OwnerID: alice, Content: "old"}, nil)
	comments.On("UpdateContent", mock.Anything, commentID, "new").
		Return(&model.Comment{ID: commentID, VideoID: videoID, OwnerID: alice, Content: "new"}, nil)
	comments.On("Delete", mock.Anything, commentID).Return(nil)
	expectUsers(db, alice)

	got, err := svc.UpdateComment(context.Background(), alice, commentID.String(), "new")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)

	_, err = svc.UpdateComment(context.Background(), bob, commentID.String(), "hijack")
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(svc.DeleteComment(context.Background(), bob, commentID.String())))
	require.NoError(t, svc.DeleteComment(context.Background(), alice, commentID.String()))

	comments.AssertNumberOfCalls(t, "UpdateContent", 1)
	comments.AssertNumberOfCalls(t, "Delete", 1)
}

func TestListComments(t *testing.T) {
	comments, db, svc := newTestService(t)

	w, err := commentrepo.Sorts.Resolve(page.Params{Page: 1, Limit: 2})
	require.NoError(t, err)

	c5 := model.Comment{ID: uuid.New(), VideoID: videoID, OwnerID: bob, Content: "fifth", CreatedAt: posted.Add(5 * time.Minute)}
	c4 := model.Comment{ID: uuid.New(), VideoID: videoID, OwnerID: alice, Content: "fourth", CreatedAt: posted.Add(4 * time.Minute)}
	comments.On("ListByVideo", mock.Anything, videoID, w).Return(page.New([]model.Comment{c5, c4}, w, 5), nil)
	expectUsers(db, bob, alice)

	got, err := svc.ListComments(context.Background(), videoID.String(), page.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "fifth", got.Items[0].Content)
	assert.Equal(t, "user-bbbb", got.Items[0].Owner.Username)
	assert.Equal(t, "user-aaaa", got.Items[1].Owner.Username)
	assert.Equal(t, int64(3), got.TotalPages)

	assert.NoError(t, db.ExpectationsWereMet())
}

func TestListComments_Rejections(t *testing.T) {
	_, _, svc := newTestService(t)

	_, err := svc.ListComments(context.Background(), "xyz", page.Params{})
	assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))

	_, err = svc.ListComments(context.Background(), videoID.String(), page.Params{SortDir: "sideways"})
	assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))
}

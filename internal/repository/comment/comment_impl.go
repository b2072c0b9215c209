package comment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

const columns = "id, video_id, owner_id, content, created_at, updated_at"

func scan(row pgx.Row) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// commentRepository implements Repository using PostgreSQL
type commentRepository struct {
	pool common.Pool
}

// NewRepository creates a new comment repository
func NewRepository(pool common.Pool) Repository {
	return &commentRepository{
		pool: pool,
	}
}

// Create creates a new comment record. A missing video surfaces as NotFound.
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	sql := `INSERT INTO comments (id, video_id, owner_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, sql, comment.ID, comment.VideoID, comment.OwnerID, comment.Content).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create comment")
	}
	return nil
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	c, err := scan(r.pool.QueryRow(ctx, "SELECT "+columns+" FROM comments WHERE id = $1", id))
	if err != nil {
		return nil, notFoundOr(err, "failed to get comment")
	}
	return &c, nil
}

// UpdateContent updates the content of a comment
func (r *commentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	sql := "UPDATE comments SET content = $2, updated_at = now() WHERE id = $1 RETURNING " + columns
	c, err := scan(r.pool.QueryRow(ctx, sql, id, content))
	if err != nil {
		return nil, notFoundOr(err, "failed to update comment")
	}
	return &c, nil
}

// Delete deletes a comment by its ID
func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete comment")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "comment not found")
	}
	return nil
}

// ListByVideo retrieves one window of comments on a video
func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, w page.Window) (*page.Page[model.Comment], error) {
	q := page.Query[model.Comment]{
		From:    "comments c",
		Columns: "c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at",
		Filter:  (&page.Filter{}).Where("c.video_id = ?", videoID),
		Scan: func(row pgx.Rows) (model.Comment, error) {
			return scan(row)
		},
	}
	return page.Fetch(ctx, r.pool, q, w, "failed to list comments")
}

func notFoundOr(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Wrap(err, apperrors.CodeNotFound, "comment not found")
	}
	return common.HandlePostgreSQLError(err, operation)
}

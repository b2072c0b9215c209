package tweet

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

const columns = "id, owner_id, content, created_at, updated_at"

func scan(row pgx.Row) (model.Tweet, error) {
	var t model.Tweet
	err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// tweetRepository implements Repository using PostgreSQL
type tweetRepository struct {
	pool common.Pool
}

// NewRepository creates a new tweet repository
func NewRepository(pool common.Pool) Repository {
	return &tweetRepository{
		pool: pool,
	}
}

// Create creates a new tweet record
func (r *tweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	sql := "INSERT INTO tweets (id, owner_id, content) VALUES ($1, $2, $3) RETURNING created_at, updated_at"
	err := r.pool.QueryRow(ctx, sql, tweet.ID, tweet.OwnerID, tweet.Content).Scan(&tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create tweet")
	}
	return nil
}

// GetByID retrieves a tweet by its ID
func (r *tweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	t, err := scan(r.pool.QueryRow(ctx, "SELECT "+columns+" FROM tweets WHERE id = $1", id))
	if err != nil {
		return nil, notFoundOr(err, "failed to get tweet")
	}
	return &t, nil
}

// UpdateContent updates the content of a tweet
func (r *tweetRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Tweet, error) {
	sql := "UPDATE tweets SET content = $2, updated_at = now() WHERE id = $1 RETURNING " + columns
	t, err := scan(r.pool.QueryRow(ctx, sql, id, content))
	if err != nil {
		return nil, notFoundOr(err, "failed to update tweet")
	}
	return &t, nil
}

// Delete deletes a tweet and the likes on it
func (r *tweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tweets WHERE id = $1", id)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete tweet")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "tweet not found")
	}
	return nil
}

// ListByOwner retrieves one window of a user's tweets
func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, w page.Window) (*page.Page[model.Tweet], error) {
	q := page.Query[model.Tweet]{
		From:    "tweets t",
		Columns: "t.id, t.owner_id, t.content, t.created_at, t.updated_at",
		Filter:  (&page.Filter{}).Where("t.owner_id = ?", ownerID),
		Scan: func(row pgx.Rows) (model.Tweet, error) {
			return scan(row)
		},
	}
	return page.Fetch(ctx, r.pool, q, w, "failed to list tweets")
}

func notFoundOr(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Wrap(err, apperrors.CodeNotFound, "tweet not found")
	}
	return common.HandlePostgreSQLError(err, operation)
}

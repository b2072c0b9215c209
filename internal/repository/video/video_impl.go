package video

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

var columnNames = []string{
	"id", "owner_id", "title", "description", "media_ref", "thumbnail_ref",
	"duration_seconds", "view_count", "is_published", "created_at", "updated_at",
}

// Columns returns the video select list, prefixed with alias when set
func Columns(alias string) string {
	if alias == "" {
		return strings.Join(columnNames, ", ")
	}
	prefixed := make([]string, len(columnNames))
	for i, c := range columnNames {
		prefixed[i] = alias + "." + c
	}
	return strings.Join(prefixed, ", ")
}

// Scan reads one row selected with Columns
func Scan(row pgx.Row) (model.Video, error) {
	var v model.Video
	err := row.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.MediaRef, &v.ThumbnailRef,
		&v.DurationSeconds, &v.ViewCount, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// videoRepository implements Repository using PostgreSQL
type videoRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool common.Pool) Repository {
	return &videoRepository{
		pool: pool,
	}
}

// Create creates a new video record
func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	sql := `INSERT INTO videos (id, owner_id, title, description, media_ref, thumbnail_ref, duration_seconds, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING view_count, created_at, updated_at`
	err := r.pool.QueryRow(ctx, sql, video.ID, video.OwnerID, video.Title, video.Description,
		video.MediaRef, video.ThumbnailRef, video.DurationSeconds, video.IsPublished).
		Scan(&video.ViewCount, &video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create video")
	}
	return nil
}

// GetByID retrieves a video by its ID
func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	sql := "SELECT " + Columns("") + " FROM videos WHERE id = $1"
	video, err := Scan(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get video")
	}
	return &video, nil
}

// Update updates the whitelisted fields of a video
func (r *videoRepository) Update(ctx context.Context, id uuid.UUID, fields Update) (*model.Video, error) {
	sql := `UPDATE videos SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			thumbnail_ref = COALESCE($4, thumbnail_ref),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + Columns("")
	video, err := Scan(r.pool.QueryRow(ctx, sql, id, fields.Title, fields.Description, fields.ThumbnailRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to update video")
	}
	return &video, nil
}

// TogglePublished flips the published flag of a video
func (r *videoRepository) TogglePublished(ctx context.Context, id uuid.UUID) (bool, error) {
	sql := "UPDATE videos SET is_published = NOT is_published, updated_at = now() WHERE id = $1 RETURNING is_published"
	var published bool
	if err := r.pool.QueryRow(ctx, sql, id).Scan(&published); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return false, common.HandlePostgreSQLError(err, "failed to toggle publish status")
	}
	return published, nil
}

// Delete deletes a video by its ID
func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql := "DELETE FROM videos WHERE id = $1"
	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete video")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "video not found")
	}
	return nil
}

// RecordView counts a view and updates the viewer's watch history. Only videos
// the viewer may see are counted.
func (r *videoRepository) RecordView(ctx context.Context, videoID, viewerID uuid.UUID) error {
	return common.InTx(ctx, r.pool, "record view", func(tx pgx.Tx) error {
		sql := "UPDATE videos SET view_count = view_count + 1 WHERE id = $1 AND (is_published OR owner_id = $2)"
		tag, err := tx.Exec(ctx, sql, videoID, viewerID)
		if err != nil {
			return common.HandlePostgreSQLError(err, "failed to increment view count")
		}
		if tag.RowsAffected() == 0 {
			return apperrors.New(apperrors.CodeNotFound, "video not found")
		}

		sql = `INSERT INTO watch_history (user_id, video_id, watched_at) VALUES ($1, $2, now())
			ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = EXCLUDED.watched_at`
		if _, err := tx.Exec(ctx, sql, viewerID, videoID); err != nil {
			return common.HandlePostgreSQLError(err, "failed to update watch history")
		}
		return nil
	})
}

// List retrieves one window of videos
func (r *videoRepository) List(ctx context.Context, filter ListFilter, w page.Window) (*page.Page[model.Video], error) {
	q := page.Query[model.Video]{
		From:    "videos v",
		Columns: Columns("v"),
		Filter:  &page.Filter{},
		Scan: func(row pgx.Rows) (model.Video, error) {
			return Scan(row)
		},
	}

	if filter.PublishedOnly {
		q.Filter.Where("v.is_published")
	}
	if filter.OwnerID != uuid.Nil {
		q.Filter.Where("v.owner_id = ?", filter.OwnerID)
	}
	if username := strings.ToLower(strings.TrimSpace(filter.OwnerUsername)); username != "" {
		q.From = "videos v JOIN users u ON u.id = v.owner_id"
		q.Filter.Where("u.username = ?", username)
	}
	if text := strings.TrimSpace(filter.Query); text != "" {
		pattern := "%" + escapeLike(text) + "%"
		q.Filter.Where("(v.title ILIKE ? OR v.description ILIKE ?)", pattern, pattern)
	}

	return page.Fetch(ctx, r.pool, q, w, "failed to list videos")
}

// escapeLike quotes LIKE wildcards in user text
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

package like

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

// toggleTemplate deletes the edge if present and otherwise inserts it. The
// partial unique index on (liked_by, <target>) makes a concurrent insert of the
// same edge a no-op, reported as neither removed nor added.
const toggleTemplate = `WITH removed AS (
	DELETE FROM likes WHERE liked_by = $1 AND %[1]s = $2 RETURNING id
), added AS (
	INSERT INTO likes (id, liked_by, %[1]s)
	SELECT $3::uuid, $1::uuid, $2::uuid WHERE NOT EXISTS (SELECT 1 FROM removed)
	ON CONFLICT DO NOTHING
	RETURNING id
)
SELECT (SELECT count(*) FROM removed), COALESCE((SELECT id::text FROM added), '')`

// Statements are fixed per kind; no caller input reaches the column names.
var (
	toggleSQL = map[Kind]string{
		KindVideo:   fmt.Sprintf(toggleTemplate, "video_id"),
		KindComment: fmt.Sprintf(toggleTemplate, "comment_id"),
		KindTweet:   fmt.Sprintf(toggleTemplate, "tweet_id"),
	}
	existsSQL = map[Kind]string{
		KindVideo:   "SELECT EXISTS (SELECT 1 FROM videos WHERE id = $1)",
		KindComment: "SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)",
		KindTweet:   "SELECT EXISTS (SELECT 1 FROM tweets WHERE id = $1)",
	}
)

// likeRepository implements Repository using PostgreSQL
type likeRepository struct {
	pool common.Pool
}

// NewRepository creates a new like repository
func NewRepository(pool common.Pool) Repository {
	return &likeRepository{
		pool: pool,
	}
}

// Toggle flips the like edge for (actor, target)
func (r *likeRepository) Toggle(ctx context.Context, kind Kind, actor, target, edgeID uuid.UUID) (common.ToggleResult, error) {
	sql, ok := toggleSQL[kind]
	if !ok {
		return common.ToggleResult{}, apperrors.New(apperrors.CodeInvalidArg, "unsupported like target")
	}
	return common.ScanToggle(r.pool.QueryRow(ctx, sql, actor, target, edgeID), "failed to toggle "+kind.String()+" like")
}

// TargetExists checks the liked content
func (r *likeRepository) TargetExists(ctx context.Context, kind Kind, target uuid.UUID) (bool, error) {
	sql, ok := existsSQL[kind]
	if !ok {
		return false, apperrors.New(apperrors.CodeInvalidArg, "unsupported like target")
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, sql, target).Scan(&exists); err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to check "+kind.String())
	}
	return exists, nil
}

// LikedVideos lists video likes of actor
func (r *likeRepository) LikedVideos(ctx context.Context, actor uuid.UUID, w page.Window, join page.Join[LikedVideo]) (*page.Page[LikedVideo], error) {
	q := page.Query[LikedVideo]{
		From:    "likes l JOIN videos v ON v.id = l.video_id",
		Columns: "l.id, l.video_id, l.created_at",
		Filter:  (&page.Filter{}).Where("l.liked_by = ?", actor).Where("(v.is_published OR v.owner_id = ?)", actor),
		Join:    join,
		Scan: func(row pgx.Rows) (LikedVideo, error) {
			var lv LikedVideo
			err := row.Scan(&lv.LikeID, &lv.VideoID, &lv.LikedAt)
			return lv, err
		},
	}
	return page.Fetch(ctx, r.pool, q, w, "failed to list liked videos")
}

// Package stats computes per-channel rollups.
package stats

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

// channelStatsSQL reads every rollup in one statement. Each sub-aggregate is
// filtered by the channel before it aggregates, and the outer row comes from
// users, so a channel without videos still yields one row of zeros.
const channelStatsSQL = `SELECT
	(SELECT count(*) FROM videos v WHERE v.owner_id = u.id)::bigint,
	(SELECT COALESCE(sum(v.view_count), 0) FROM videos v WHERE v.owner_id = u.id)::bigint,
	(SELECT count(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = u.id)::bigint,
	(SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id)::bigint,
	(SELECT count(*) FROM tweets t WHERE t.owner_id = u.id)::bigint
FROM users u
WHERE u.id = $1`

// Service is interface for channel statistics
type Service interface {
	ChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error)
}

// service implements Service
type service struct {
	db common.Querier
}

// NewService creates a new stats Service
func NewService(db common.Querier) Service {
	return &service{db: db}
}

// ChannelStats returns the rollup of one channel
func (s *service) ChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error) {
	id, err := ids.Parse("channel id", channelID)
	if err != nil {
		return nil, err
	}

	var st model.ChannelStats
	err = s.db.QueryRow(ctx, channelStatsSQL, id).
		Scan(&st.TotalVideos, &st.TotalViews, &st.TotalLikes, &st.TotalSubscribers, &st.TotalTweets)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "channel not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to compute channel stats")
	}
	return &st, nil
}

package stats

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/model"
)

var channel = uuid.MustParse("cccccccc-0000-4000-8000-000000000003")

var statsColumns = []string{"total_videos", "total_views", "total_likes", "total_subscribers", "total_tweets"}

func TestChannelStats(t *testing.T) {
	tests := []struct {
		name      string
		channelID string
		setup     func(mock pgxmock.PgxPoolIface)
		want      *model.ChannelStats
		wantCode  string
	}{
		{
			name:      "three videos",
			channelID: channel.String(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users u\nWHERE u.id = $1")).
					WithArgs(channel).
					WillReturnRows(pgxmock.NewRows(statsColumns).AddRow(int64(3), int64(15), int64(3), int64(4), int64(2)))
			},
			want: &model.ChannelStats{TotalVideos: 3, TotalViews: 15, TotalLikes: 3, TotalSubscribers: 4, TotalTweets: 2},
		},
		{
			name:      "no videos yields zeros",
			channelID: channel.String(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("COALESCE\\(sum\\(v.view_count\\), 0\\)").
					WithArgs(channel).
					WillReturnRows(pgxmock.NewRows(statsColumns).AddRow(int64(0), int64(0), int64(0), int64(7), int64(1)))
			},
			want: &model.ChannelStats{TotalSubscribers: 7, TotalTweets: 1},
		},
		{
			name:      "unknown channel",
			channelID: channel.String(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM users u").
					WithArgs(channel).
					WillReturnRows(pgxmock.NewRows(statsColumns))
			},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name:      "store timeout",
			channelID: channel.String(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM users u").
					WithArgs(channel).
					WillReturnError(context.DeadlineExceeded)
			},
			wantCode: apperrors.CodeStore,
		},
		{
			name:      "malformed id",
			channelID: "42",
			wantCode:  apperrors.CodeInvalidArg,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			if tt.setup != nil {
				tt.setup(mock)
			}
			got, err := NewService(mock).ChannelStats(context.Background(), tt.channelID)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestChannelStatsSQL_FiltersBeforeAggregating(t *testing.T) {
	for _, predicate := range []string{
		"v.owner_id = u.id",
		"s.channel_id = u.id",
		"t.owner_id = u.id",
	} {
		assert.Contains(t, channelStatsSQL, predicate)
	}
	assert.Len(t, regexp.MustCompile(`::bigint`).FindAllString(channelStatsSQL, -1), 5)
}

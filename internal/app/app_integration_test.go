//go:build integration

package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/media"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
	"github.com/Taichi-iskw/vidshare/internal/repository/user"
	"github.com/Taichi-iskw/vidshare/internal/repository/video"
	"github.com/Taichi-iskw/vidshare/internal/service/toggle"
)

type fixture struct {
	pool *pgxpool.Pool
	svc  *Services
	ctx  context.Context
}

func newFixture(t *testing.T) *fixture {
	pool := common.SetupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	return &fixture{
		pool: pool,
		svc:  NewServices(pool, media.Disabled(), toggle.DefaultAttempts),
		ctx:  ctx,
	}
}

func (f *fixture) user(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u := &model.User{
		ID:           ids.New(),
		Username:     name,
		Email:        name + "@example.com",
		DisplayName:  name,
		AvatarRef:    "http://cdn/" + name + ".png",
		PasswordHash: "$2a$04$hash",
	}
	require.NoError(t, user.NewRepository(f.pool).Create(f.ctx, u))
	return u.ID
}

func (f *fixture) video(t *testing.T, owner uuid.UUID, title string, views int64) uuid.UUID {
	t.Helper()
	v := &model.Video{
		ID:           ids.New(),
		OwnerID:      owner,
		Title:        title,
		MediaRef:     "http://cdn/" + title + ".mp4",
		ThumbnailRef: "http://cdn/" + title + ".png",
		IsPublished:  true,
	}
	require.NoError(t, video.NewRepository(f.pool).Create(f.ctx, v))
	_, err := f.pool.Exec(f.ctx, "UPDATE videos SET view_count = $2 WHERE id = $1", v.ID, views)
	require.NoError(t, err)
	return v.ID
}

func TestToggleLike_Integration(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.video(t, alice, "intro", 0)

	target := toggle.VideoTarget{VideoID: v.String()}

	first, err := f.svc.Toggles.ToggleLike(f.ctx, bob, target)
	require.NoError(t, err)
	assert.True(t, first.Present)
	require.NotNil(t, first.EdgeID)
	assert.NotEqual(t, uuid.Nil, *first.EdgeID)

	second, err := f.svc.Toggles.ToggleLike(f.ctx, bob, target)
	require.NoError(t, err)
	assert.False(t, second.Present)

	var n int
	require.NoError(t, f.pool.QueryRow(f.ctx, "SELECT count(*) FROM likes WHERE video_id = $1", v).Scan(&n))
	assert.Equal(t, 0, n)

	_, err = f.svc.Toggles.ToggleLike(f.ctx, bob, toggle.VideoTarget{VideoID: ids.New().String()})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestToggle_ConcurrentParity_Integration(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.video(t, alice, "race", 0)

	for _, n := range []int{7, 8} {
		t.Run(fmt.Sprintf("%d concurrent likes", n), func(t *testing.T) {
			_, err := f.pool.Exec(f.ctx, "DELETE FROM likes")
			require.NoError(t, err)

			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := f.svc.Toggles.ToggleLike(f.ctx, bob, toggle.VideoTarget{VideoID: v.String()})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			var count int
			require.NoError(t, f.pool.QueryRow(f.ctx, "SELECT count(*) FROM likes WHERE liked_by = $1 AND video_id = $2", bob, v).Scan(&count))
			assert.Equal(t, n%2, count)
		})
	}

	t.Run("concurrent subscriptions", func(t *testing.T) {
		const n = 5
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.svc.Toggles.ToggleSubscription(f.ctx, bob, alice.String())
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		var count int
		require.NoError(t, f.pool.QueryRow(f.ctx, "SELECT count(*) FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2", bob, alice).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("self subscription", func(t *testing.T) {
		_, err := f.svc.Toggles.ToggleSubscription(f.ctx, alice, alice.String())
		assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))
	})
}

func TestChannelStats_Integration(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	quiet := f.user(t, "quiet")
	fans := []uuid.UUID{f.user(t, "bob"), f.user(t, "carol"), f.user(t, "dave"), f.user(t, "erin")}

	v1 := f.video(t, alice, "one", 5)
	v2 := f.video(t, alice, "two", 7)
	f.video(t, alice, "three", 3)

	for _, liker := range []struct {
		actor uuid.UUID
		video uuid.UUID
	}{{fans[0], v1}, {fans[1], v1}, {fans[2], v2}} {
		_, err := f.svc.Toggles.ToggleLike(f.ctx, liker.actor, toggle.VideoTarget{VideoID: liker.video.String()})
		require.NoError(t, err)
	}
	for _, fan := range fans {
		_, err := f.svc.Toggles.ToggleSubscription(f.ctx, fan, alice.String())
		require.NoError(t, err)
	}
	for _, content := range []string{"first", "second"} {
		_, err := f.svc.Tweets.CreateTweet(f.ctx, alice, content)
		require.NoError(t, err)
	}

	got, err := f.svc.Stats.ChannelStats(f.ctx, alice.String())
	require.NoError(t, err)
	assert.Equal(t, &model.ChannelStats{TotalVideos: 3, TotalViews: 15, TotalLikes: 3, TotalSubscribers: 4, TotalTweets: 2}, got)

	empty, err := f.svc.Stats.ChannelStats(f.ctx, quiet.String())
	require.NoError(t, err)
	assert.Equal(t, &model.ChannelStats{}, empty)

	_, err = f.svc.Stats.ChannelStats(f.ctx, ids.New().String())
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestComments_Pagination_Integration(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.video(t, alice, "talk", 0)

	for i := 0; i < 5; i++ {
		author := alice
		if i%2 == 1 {
			author = bob
		}
		_, err := f.svc.Comments.AddComment(f.ctx, author, v.String(), fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	first, err := f.svc.Comments.ListComments(f.ctx, v.String(), page.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, int64(5), first.TotalCount)
	assert.Equal(t, int64(3), first.TotalPages)
	for _, c := range first.Items {
		assert.NotEmpty(t, c.Owner.Username)
		assert.NotEmpty(t, c.Owner.Avatar)
		assert.Empty(t, c.Owner.Email)
	}

	again, err := f.svc.Comments.ListComments(f.ctx, v.String(), page.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, first.Items, again.Items)

	last, err := f.svc.Comments.ListComments(f.ctx, v.String(), page.Params{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)

	beyond, err := f.svc.Comments.ListComments(f.ctx, v.String(), page.Params{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(5), beyond.TotalCount)
}

func TestPlaylistAndHistory_Integration(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v1 := f.video(t, alice, "one", 0)
	v2 := f.video(t, alice, "two", 0)

	p, err := f.svc.Playlists.CreatePlaylist(f.ctx, bob, "mix", "")
	require.NoError(t, err)
	for _, v := range []uuid.UUID{v1, v2, v1} {
		_, err := f.svc.Playlists.AddVideo(f.ctx, bob, p.ID.String(), v.String())
		require.NoError(t, err)
	}

	view, err := f.svc.Playlists.GetPlaylist(f.ctx, uuid.Nil, p.ID.String())
	require.NoError(t, err)
	require.Len(t, view.Videos, 3)
	assert.Equal(t, []uuid.UUID{v1, v2, v1}, []uuid.UUID{view.Videos[0].ID, view.Videos[1].ID, view.Videos[2].ID})
	assert.Equal(t, "alice", view.Videos[0].Owner.Username)

	after, err := f.svc.Playlists.RemoveVideo(f.ctx, bob, p.ID.String(), v1.String())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{v2}, after.VideoIDs)

	_, err = f.svc.Playlists.RemoveVideo(f.ctx, bob, p.ID.String(), v1.String())
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	require.NoError(t, f.svc.Videos.RecordView(f.ctx, bob, v1.String()))
	require.NoError(t, f.svc.Videos.RecordView(f.ctx, bob, v2.String()))
	require.NoError(t, f.svc.Videos.RecordView(f.ctx, bob, v1.String()))

	history, err := f.svc.Accounts.WatchHistory(f.ctx, bob, page.Params{})
	require.NoError(t, err)
	require.Len(t, history.Items, 2)
	assert.Equal(t, v1, history.Items[0].ID)
	assert.Equal(t, "alice", history.Items[0].Owner.DisplayName)

	require.NoError(t, f.svc.Videos.Delete(f.ctx, alice, v2.String()))

	emptied, err := f.svc.Playlists.GetPlaylist(f.ctx, uuid.Nil, p.ID.String())
	require.NoError(t, err)
	assert.Empty(t, emptied.Videos)

	history, err = f.svc.Accounts.WatchHistory(f.ctx, bob, page.Params{})
	require.NoError(t, err)
	assert.Len(t, history.Items, 1)

	_, err = f.pool.Exec(f.ctx, "UPDATE videos SET is_published = false WHERE id = $1", v1)
	require.NoError(t, err)

	history, err = f.svc.Accounts.WatchHistory(f.ctx, bob, page.Params{})
	require.NoError(t, err)
	assert.Empty(t, history.Items)

	err = f.svc.Videos.RecordView(f.ctx, bob, v1.String())
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	require.NoError(t, f.svc.Videos.RecordView(f.ctx, alice, v1.String()))
}

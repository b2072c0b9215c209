// Package mocks provides testify mocks of the repositories and the media store for service tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Taichi-iskw/vidshare/internal/media"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/comment"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
	"github.com/Taichi-iskw/vidshare/internal/repository/like"
	"github.com/Taichi-iskw/vidshare/internal/repository/playlist"
	"github.com/Taichi-iskw/vidshare/internal/repository/subscription"
	"github.com/Taichi-iskw/vidshare/internal/repository/tweet"
	"github.com/Taichi-iskw/vidshare/internal/repository/user"
	"github.com/Taichi-iskw/vidshare/internal/repository/video"
)

var (
	_ user.Repository         = (*UserRepository)(nil)
	_ video.Repository        = (*VideoRepository)(nil)
	_ like.Repository         = (*LikeRepository)(nil)
	_ subscription.Repository = (*SubscriptionRepository)(nil)
	_ comment.Repository      = (*CommentRepository)(nil)
	_ tweet.Repository        = (*TweetRepository)(nil)
	_ playlist.Repository     = (*PlaylistRepository)(nil)
	_ media.Store             = (*MediaStore)(nil)
)

// MediaStore is a mock implementation of media.Store
type MediaStore struct {
	mock.Mock
}

func (m *MediaStore) Put(ctx context.Context, kind media.Kind, localPath string) (*media.Object, error) {
	args := m.Called(ctx, kind, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Object), args.Error(1)
}

// UserRepository is a mock implementation of user.Repository.
// Join hooks run on Snapshot.
type UserRepository struct {
	mock.Mock
	Snapshot common.Querier
}

func (m *UserRepository) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) UpdateAccount(ctx context.Context, id uuid.UUID, fields user.AccountUpdate) (*model.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *UserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, ref string) (*model.User, error) {
	args := m.Called(ctx, id, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) UpdateCover(ctx context.Context, id uuid.UUID, ref string) (*model.User, error) {
	args := m.Called(ctx, id, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) WatchHistory(ctx context.Context, id uuid.UUID, w page.Window, join page.Join[user.HistoryEntry]) (*page.Page[user.HistoryEntry], error) {
	args := m.Called(ctx, id, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	result := args.Get(0).(*page.Page[user.HistoryEntry])
	if join != nil {
		if err := join(ctx, m.Snapshot, result.Items); err != nil {
			return nil, err
		}
	}
	return result, args.Error(1)
}

func (m *UserRepository) Profile(ctx context.Context, username string, viewer uuid.UUID) (*model.ChannelProfile, error) {
	args := m.Called(ctx, username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelProfile), args.Error(1)
}

// VideoRepository is a mock implementation of video.Repository
type VideoRepository struct {
	mock.Mock
}

func (m *VideoRepository) Create(ctx context.Context, v *model.Video) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *VideoRepository) Update(ctx context.Context, id uuid.UUID, fields video.Update) (*model.Video, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *VideoRepository) TogglePublished(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *VideoRepository) RecordView(ctx context.Context, videoID, viewerID uuid.UUID) error {
	args := m.Called(ctx, videoID, viewerID)
	return args.Error(0)
}

func (m *VideoRepository) List(ctx context.Context, filter video.ListFilter, w page.Window) (*page.Page[model.Video], error) {
	args := m.Called(ctx, filter, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.Page[model.Video]), args.Error(1)
}

// LikeRepository is a mock implementation of like.Repository.
// Join hooks run on Snapshot.
type LikeRepository struct {
	mock.Mock
	Snapshot common.Querier
}

func (m *LikeRepository) Toggle(ctx context.Context, kind like.Kind, actor, target, edgeID uuid.UUID) (common.ToggleResult, error) {
	args := m.Called(ctx, kind, actor, target, edgeID)
	return args.Get(0).(common.ToggleResult), args.Error(1)
}

func (m *LikeRepository) TargetExists(ctx context.Context, kind like.Kind, target uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, target)
	return args.Bool(0), args.Error(1)
}

func (m *LikeRepository) LikedVideos(ctx context.Context, actor uuid.UUID, w page.Window, join page.Join[like.LikedVideo]) (*page.Page[like.LikedVideo], error) {
	args := m.Called(ctx, actor, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	result := args.Get(0).(*page.Page[like.LikedVideo])
	if join != nil {
		if err := join(ctx, m.Snapshot, result.Items); err != nil {
			return nil, err
		}
	}
	return result, args.Error(1)
}

// SubscriptionRepository is a mock implementation of subscription.Repository
type SubscriptionRepository struct {
	mock.Mock
}

func (m *SubscriptionRepository) Toggle(ctx context.Context, subscriber, channel, edgeID uuid.UUID) (common.ToggleResult, error) {
	args := m.Called(ctx, subscriber, channel, edgeID)
	return args.Get(0).(common.ToggleResult), args.Error(1)
}

func (m *SubscriptionRepository) ListSubscribers(ctx context.Context, channel uuid.UUID, w page.Window) (*page.Page[model.Subscription], error) {
	args := m.Called(ctx, channel, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.Page[model.Subscription]), args.Error(1)
}

func (m *SubscriptionRepository) ListChannels(ctx context.Context, subscriber uuid.UUID, w page.Window) (*page.Page[model.Subscription], error) {
	args := m.Called(ctx, subscriber, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.Page[model.Subscription]), args.Error(1)
}

// CommentRepository is a mock implementation of comment.Repository
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *CommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, w page.Window) (*page.Page[model.Comment], error) {
	args := m.Called(ctx, videoID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.Page[model.Comment]), args.Error(1)
}

// TweetRepository is a mock implementation of tweet.Repository
type TweetRepository struct {
	mock.Mock
}

func (m *TweetRepository) Create(ctx context.Context, t *model.Tweet) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *TweetRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Tweet, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *TweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, w page.Window) (*page.Page[model.Tweet], error) {
	args := m.Called(ctx, ownerID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.Page[model.Tweet]), args.Error(1)
}

// PlaylistRepository is a mock implementation of playlist.Repository.
// Join hooks run on Snapshot.
type PlaylistRepository struct {
	mock.Mock
	Snapshot common.Querier
}

func (m *PlaylistRepository) Create(ctx context.Context, p *model.Playlist) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *PlaylistRepository) View(ctx context.Context, id uuid.UUID, join func(ctx context.Context, q common.Querier, p *model.Playlist) error) (*model.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	p := args.Get(0).(*model.Playlist)
	if join != nil {
		if err := join(ctx, m.Snapshot, p); err != nil {
			return nil, err
		}
	}
	return p, args.Error(1)
}

func (m *PlaylistRepository) Update(ctx context.Context, id uuid.UUID, fields playlist.Update) (*model.Playlist, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	args := m.Called(ctx, playlistID, videoID)
	return args.Error(0)
}

func (m *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (int64, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, w page.Window) (*page.Page[model.Playlist], error) {
	args := m.Called(ctx, ownerID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.Page[model.Playlist]), args.Error(1)
}

// Package video publishes videos and serves the video feeds.
package video

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/media"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
	"github.com/Taichi-iskw/vidshare/internal/repository/like"
	videorepo "github.com/Taichi-iskw/vidshare/internal/repository/video"
	"github.com/Taichi-iskw/vidshare/internal/resolver"
)

// PublishInput carries a new upload
type PublishInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateInput carries the editable fields; nil or empty fields are left unchanged
type UpdateInput struct {
	Title         *string
	Description   *string
	ThumbnailPath string
}

// FeedQuery filters the public feed
type FeedQuery struct {
	// Query matches title or description
	Query string
	// Username restricts the feed to one channel
	Username string
	page.Params
}

// Service is interface for video operations
type Service interface {
	Publish(ctx context.Context, actor uuid.UUID, in PublishInput) (*model.VideoView, error)
	Get(ctx context.Context, viewer uuid.UUID, videoID string) (*model.VideoView, error)
	Update(ctx context.Context, actor uuid.UUID, videoID string, in UpdateInput) (*model.VideoView, error)
	Delete(ctx context.Context, actor uuid.UUID, videoID string) error
	TogglePublish(ctx context.Context, actor uuid.UUID, videoID string) (bool, error)
	RecordView(ctx context.Context, viewer uuid.UUID, videoID string) error
	ListVideos(ctx context.Context, q FeedQuery) (*page.Page[model.VideoView], error)
	ListChannelVideos(ctx context.Context, viewer uuid.UUID, channelID string, params page.Params) (*page.Page[model.VideoView], error)
	LikedVideos(ctx context.Context, actor uuid.UUID, params page.Params) (*page.Page[model.LikedVideoView], error)
}

// service implements Service
type service struct {
	videos   videorepo.Repository
	likes    like.Repository
	media    media.Store
	resolver *resolver.Resolver
}

// NewService creates a new video Service
func NewService(videos videorepo.Repository, likes like.Repository, store media.Store, res *resolver.Resolver) Service {
	return &service{
		videos:   videos,
		likes:    likes,
		media:    store,
		resolver: res,
	}
}

// Publish uploads the media, reads its duration and creates a published video
func (s *service) Publish(ctx context.Context, actor uuid.UUID, in PublishInput) (*model.VideoView, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "title and description are required")
	}
	if strings.TrimSpace(in.VideoPath) == "" || strings.TrimSpace(in.ThumbnailPath) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "video file and thumbnail are required")
	}

	file, err := s.media.Put(ctx, media.KindVideo, in.VideoPath)
	if err != nil {
		return nil, err
	}
	thumbnail, err := s.media.Put(ctx, media.KindThumbnail, in.ThumbnailPath)
	if err != nil {
		return nil, err
	}

	v := &model.Video{
		ID:              ids.New(),
		OwnerID:         actor,
		Title:           title,
		Description:     description,
		MediaRef:        file.Ref,
		ThumbnailRef:    thumbnail.Ref,
		DurationSeconds: file.DurationSeconds,
		IsPublished:     true,
	}
	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"video_id": v.ID, "owner_id": actor, "duration": v.DurationSeconds}).Info("video published")
	return s.view(ctx, v)
}

// Get returns a video with its owner. Unpublished videos are visible to their owner only.
func (s *service) Get(ctx context.Context, viewer uuid.UUID, videoID string) (*model.VideoView, error) {
	id, err := ids.Parse("video id", videoID)
	if err != nil {
		return nil, err
	}
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.IsPublished && v.OwnerID != viewer {
		return nil, apperrors.New(apperrors.CodeNotFound, "video not found")
	}
	return s.view(ctx, v)
}

// Update edits the title, description or thumbnail of the actor's video
func (s *service) Update(ctx context.Context, actor uuid.UUID, videoID string, in UpdateInput) (*model.VideoView, error) {
	v, err := s.owned(ctx, actor, videoID)
	if err != nil {
		return nil, err
	}

	fields := videorepo.Update{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.New(apperrors.CodeInvalidArg, "title cannot be empty")
		}
		fields.Title = &title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		fields.Description = &description
	}
	if strings.TrimSpace(in.ThumbnailPath) != "" {
		thumbnail, err := s.media.Put(ctx, media.KindThumbnail, in.ThumbnailPath)
		if err != nil {
			return nil, err
		}
		fields.ThumbnailRef = &thumbnail.Ref
	}
	if fields.Title == nil && fields.Description == nil && fields.ThumbnailRef == nil {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "nothing to update")
	}

	updated, err := s.videos.Update(ctx, v.ID, fields)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, updated)
}

// Delete removes the actor's video together with everything referencing it
func (s *service) Delete(ctx context.Context, actor uuid.UUID, videoID string) error {
	v, err := s.owned(ctx, actor, videoID)
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, v.ID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"video_id": v.ID, "owner_id": actor}).Info("video deleted")
	return nil
}

// TogglePublish flips the published flag of the actor's video
func (s *service) TogglePublish(ctx context.Context, actor uuid.UUID, videoID string) (bool, error) {
	v, err := s.owned(ctx, actor, videoID)
	if err != nil {
		return false, err
	}
	return s.videos.TogglePublished(ctx, v.ID)
}

// RecordView counts a view and records it in the viewer's watch history.
// Another channel's unpublished video is not found.
func (s *service) RecordView(ctx context.Context, viewer uuid.UUID, videoID string) error {
	if viewer == uuid.Nil {
		return apperrors.New(apperrors.CodeInvalidArg, "viewer is required")
	}
	id, err := ids.Parse("video id", videoID)
	if err != nil {
		return err
	}
	return s.videos.RecordView(ctx, id, viewer)
}

// ListVideos returns the public feed with owners {username, avatar}
func (s *service) ListVideos(ctx context.Context, q FeedQuery) (*page.Page[model.VideoView], error) {
	w, err := videorepo.Sorts.Resolve(q.Params)
	if err != nil {
		return nil, err
	}
	result, err := s.videos.List(ctx, videorepo.ListFilter{
		Query:         q.Query,
		OwnerUsername: q.Username,
		PublishedOnly: true,
	}, w)
	if err != nil {
		return nil, err
	}
	return s.withOwners(ctx, result)
}

// ListChannelVideos lists one channel's videos. The owner also sees unpublished ones.
func (s *service) ListChannelVideos(ctx context.Context, viewer uuid.UUID, channelID string, params page.Params) (*page.Page[model.VideoView], error) {
	channel, err := ids.Parse("channel id", channelID)
	if err != nil {
		return nil, err
	}
	w, err := videorepo.Sorts.Resolve(params)
	if err != nil {
		return nil, err
	}
	result, err := s.videos.List(ctx, videorepo.ListFilter{
		OwnerID:       channel,
		PublishedOnly: viewer != channel,
	}, w)
	if err != nil {
		return nil, err
	}
	return s.withOwners(ctx, result)
}

// LikedVideos lists the videos the actor likes, most recent like first. Videos
// are resolved on the snapshot that read the likes.
func (s *service) LikedVideos(ctx context.Context, actor uuid.UUID, params page.Params) (*page.Page[model.LikedVideoView], error) {
	w, err := like.LikedSorts.Resolve(params)
	if err != nil {
		return nil, err
	}

	var videos []model.VideoView
	liked, err := s.likes.LikedVideos(ctx, actor, w, func(ctx context.Context, q common.Querier, items []like.LikedVideo) error {
		videoIDs := make([]uuid.UUID, len(items))
		for i, l := range items {
			videoIDs[i] = l.VideoID
		}
		var err error
		videos, err = s.resolver.On(q).Videos(ctx, videoIDs, resolver.PublicProfile)
		return err
	})
	if err != nil {
		return nil, err
	}

	views := make([]model.LikedVideoView, len(liked.Items))
	for i, l := range liked.Items {
		views[i] = model.LikedVideoView{LikeID: l.LikeID, LikedAt: l.LikedAt, Video: videos[i]}
	}
	return page.With(liked, views), nil
}

// owned loads a video and checks that actor owns it
func (s *service) owned(ctx context.Context, actor uuid.UUID, videoID string) (*model.Video, error) {
	id, err := ids.Parse("video id", videoID)
	if err != nil {
		return nil, err
	}
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != actor {
		return nil, apperrors.New(apperrors.CodeForbidden, "only the owner can modify this video")
	}
	return v, nil
}

func (s *service) view(ctx context.Context, v *model.Video) (*model.VideoView, error) {
	views, err := s.resolver.WithOwners(ctx, []model.Video{*v}, resolver.PublicProfile)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *service) withOwners(ctx context.Context, result *page.Page[model.Video]) (*page.Page[model.VideoView], error) {
	views, err := s.resolver.WithOwners(ctx, result.Items, resolver.PublicProfile)
	if err != nil {
		return nil, err
	}
	return page.With(result, views), nil
}

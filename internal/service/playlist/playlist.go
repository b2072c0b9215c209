// Package playlist manages user playlists.
package playlist

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
	playlistrepo "github.com/Taichi-iskw/vidshare/internal/repository/playlist"
	"github.com/Taichi-iskw/vidshare/internal/resolver"
)

// Service is interface for playlist operations
type Service interface {
	CreatePlaylist(ctx context.Context, actor uuid.UUID, name, description string) (*model.Playlist, error)
	GetPlaylist(ctx context.Context, viewer uuid.UUID, playlistID string) (*model.PlaylistView, error)
	UpdatePlaylist(ctx context.Context, actor uuid.UUID, playlistID string, fields playlistrepo.Update) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, actor uuid.UUID, playlistID string) error
	AddVideo(ctx context.Context, actor uuid.UUID, playlistID, videoID string) (*model.Playlist, error)
	RemoveVideo(ctx context.Context, actor uuid.UUID, playlistID, videoID string) (*model.Playlist, error)
	ListUserPlaylists(ctx context.Context, userID string, params page.Params) (*page.Page[model.Playlist], error)
}

// service implements Service
type service struct {
	playlists playlistrepo.Repository
	resolver  *resolver.Resolver
}

// NewService creates a new playlist Service
func NewService(playlists playlistrepo.Repository, res *resolver.Resolver) Service {
	return &service{
		playlists: playlists,
		resolver:  res,
	}
}

// CreatePlaylist creates an empty playlist owned by actor
func (s *service) CreatePlaylist(ctx context.Context, actor uuid.UUID, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "name is required")
	}
	p := &model.Playlist{
		ID:          ids.New(),
		OwnerID:     actor,
		Name:        name,
		Description: strings.TrimSpace(description),
		VideoIDs:    []uuid.UUID{},
	}
	if err := s.playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlaylist returns a playlist with its owner and its videos in playlist order.
// Unpublished videos are listed only to their owner. The playlist and everything
// it references are read from one snapshot.
func (s *service) GetPlaylist(ctx context.Context, viewer uuid.UUID, playlistID string) (*model.PlaylistView, error) {
	id, err := ids.Parse("playlist id", playlistID)
	if err != nil {
		return nil, err
	}

	var view []model.PlaylistView
	_, err = s.playlists.View(ctx, id, func(ctx context.Context, q common.Querier, p *model.Playlist) error {
		res := s.resolver.On(q)
		view = []model.PlaylistView{{Playlist: *p}}
		err := resolver.One(ctx, res, view, "playlist.owner", resolver.HistoryOwner,
			func(v *model.PlaylistView) uuid.UUID { return v.OwnerID },
			func(v *model.PlaylistView, u model.PublicUser) { v.Owner = u })
		if err != nil {
			return err
		}
		videos, err := res.Videos(ctx, p.VideoIDs, resolver.HistoryOwner)
		if err != nil {
			return err
		}
		view[0].Videos = visibleTo(viewer, videos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view[0], nil
}

func visibleTo(viewer uuid.UUID, videos []model.VideoView) []model.VideoView {
	visible := make([]model.VideoView, 0, len(videos))
	for _, v := range videos {
		if v.IsPublished || v.OwnerID == viewer {
			visible = append(visible, v)
		}
	}
	return visible
}

// UpdatePlaylist changes the name or description of the actor's playlist
func (s *service) UpdatePlaylist(ctx context.Context, actor uuid.UUID, playlistID string, fields playlistrepo.Update) (*model.Playlist, error) {
	if fields.Name == nil && fields.Description == nil {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "nothing to update")
	}
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.New(apperrors.CodeInvalidArg, "name cannot be empty")
		}
		fields.Name = &name
	}
	p, err := s.owned(ctx, actor, playlistID)
	if err != nil {
		return nil, err
	}
	return s.playlists.Update(ctx, p.ID, fields)
}

// DeletePlaylist removes the actor's playlist
func (s *service) DeletePlaylist(ctx context.Context, actor uuid.UUID, playlistID string) error {
	p, err := s.owned(ctx, actor, playlistID)
	if err != nil {
		return err
	}
	return s.playlists.Delete(ctx, p.ID)
}

// AddVideo appends a video to the actor's playlist
func (s *service) AddVideo(ctx context.Context, actor uuid.UUID, playlistID, videoID string) (*model.Playlist, error) {
	video, err := ids.Parse("video id", videoID)
	if err != nil {
		return nil, err
	}
	p, err := s.owned(ctx, actor, playlistID)
	if err != nil {
		return nil, err
	}
	if err := s.playlists.AddVideo(ctx, p.ID, video); err != nil {
		return nil, err
	}
	return s.playlists.GetByID(ctx, p.ID)
}

// RemoveVideo removes every occurrence of a video from the actor's playlist
func (s *service) RemoveVideo(ctx context.Context, actor uuid.UUID, playlistID, videoID string) (*model.Playlist, error) {
	video, err := ids.Parse("video id", videoID)
	if err != nil {
		return nil, err
	}
	p, err := s.owned(ctx, actor, playlistID)
	if err != nil {
		return nil, err
	}
	removed, err := s.playlists.RemoveVideo(ctx, p.ID, video)
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "video is not in the playlist")
	}
	return s.playlists.GetByID(ctx, p.ID)
}

// ListUserPlaylists lists a user's playlists
func (s *service) ListUserPlaylists(ctx context.Context, userID string, params page.Params) (*page.Page[model.Playlist], error) {
	owner, err := ids.Parse("user id", userID)
	if err != nil {
		return nil, err
	}
	w, err := playlistrepo.Sorts.Resolve(params)
	if err != nil {
		return nil, err
	}
	return s.playlists.ListByOwner(ctx, owner, w)
}

func (s *service) owned(ctx context.Context, actor uuid.UUID, playlistID string) (*model.Playlist, error) {
	id, err := ids.Parse("playlist id", playlistID)
	if err != nil {
		return nil, err
	}
	p, err := s.playlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor {
		return nil, apperrors.New(apperrors.CodeForbidden, "only the owner can modify this playlist")
	}
	return p, nil
}

// Package comment manages comments on videos.
package comment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	commentrepo "github.com/Taichi-iskw/vidshare/internal/repository/comment"
	"github.com/Taichi-iskw/vidshare/internal/resolver"
)

// Service is interface for comment operations
type Service interface {
	AddComment(ctx context.Context, actor uuid.UUID, videoID, content string) (*model.CommentView, error)
	UpdateComment(ctx context.Context, actor uuid.UUID, commentID, content string) (*model.CommentView, error)
	DeleteComment(ctx context.Context, actor uuid.UUID, commentID string) error
	ListComments(ctx context.Context, videoID string, params page.Params) (*page.Page[model.CommentView], error)
}

// service implements Service
type service struct {
	comments commentrepo.Repository
	resolver *resolver.Resolver
}

// NewService creates a new comment Service
func NewService(comments commentrepo.Repository, res *resolver.Resolver) Service {
	return &service{
		comments: comments,
		resolver: res,
	}
}

// AddComment posts a comment on a video
func (s *service) AddComment(ctx context.Context, actor uuid.UUID, videoID, content string) (*model.CommentView, error) {
	video, err := ids.Parse("video id", videoID)
	if err != nil {
		return nil, err
	}
	content, err = requireContent(content)
	if err != nil {
		return nil, err
	}

	c := &model.Comment{ID: ids.New(), VideoID: video, OwnerID: actor, Content: content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.view(ctx, *c)
}

// UpdateComment replaces the content of the actor's comment
func (s *service) UpdateComment(ctx context.Context, actor uuid.UUID, commentID, content string) (*model.CommentView, error) {
	content, err := requireContent(content)
	if err != nil {
		return nil, err
	}
	c, err := s.owned(ctx, actor, commentID)
	if err != nil {
		return nil, err
	}
	updated, err := s.comments.UpdateContent(ctx, c.ID, content)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *updated)
}

// DeleteComment removes the actor's comment and the likes on it
func (s *service) DeleteComment(ctx context.Context, actor uuid.UUID, commentID string) error {
	c, err := s.owned(ctx, actor, commentID)
	if err != nil {
		return err
	}
	return s.comments.Delete(ctx, c.ID)
}

// ListComments lists the comments of a video with their authors {username, avatar}
func (s *service) ListComments(ctx context.Context, videoID string, params page.Params) (*page.Page[model.CommentView], error) {
	video, err := ids.Parse("video id", videoID)
	if err != nil {
		return nil, err
	}
	w, err := commentrepo.Sorts.Resolve(params)
	if err != nil {
		return nil, err
	}
	result, err := s.comments.ListByVideo(ctx, video, w)
	if err != nil {
		return nil, err
	}

	views := make([]model.CommentView, len(result.Items))
	for i, c := range result.Items {
		views[i].Comment = c
	}
	if err := resolver.One(ctx, s.resolver, views, "comment.owner", resolver.PublicProfile, commentOwner, setCommentOwner); err != nil {
		return nil, err
	}
	return page.With(result, views), nil
}

func (s *service) owned(ctx context.Context, actor uuid.UUID, commentID string) (*model.Comment, error) {
	id, err := ids.Parse("comment id", commentID)
	if err != nil {
		return nil, err
	}
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != actor {
		return nil, apperrors.New(apperrors.CodeForbidden, "only the author can modify this comment")
	}
	return c, nil
}

func (s *service) view(ctx context.Context, c model.Comment) (*model.CommentView, error) {
	views := []model.CommentView{{Comment: c}}
	if err := resolver.One(ctx, s.resolver, views, "comment.owner", resolver.PublicProfile, commentOwner, setCommentOwner); err != nil {
		return nil, err
	}
	return &views[0], nil
}

func commentOwner(c *model.CommentView) uuid.UUID { return c.OwnerID }

func setCommentOwner(c *model.CommentView, u model.PublicUser) { c.Owner = u }

func requireContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperrors.New(apperrors.CodeInvalidArg, "content is required")
	}
	return content, nil
}

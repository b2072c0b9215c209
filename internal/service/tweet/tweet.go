// Package tweet manages short text posts.
package tweet

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	tweetrepo "github.com/Taichi-iskw/vidshare/internal/repository/tweet"
	"github.com/Taichi-iskw/vidshare/internal/repository/user"
)

// Service is interface for tweet operations
type Service interface {
	CreateTweet(ctx context.Context, actor uuid.UUID, content string) (*model.Tweet, error)
	UpdateTweet(ctx context.Context, actor uuid.UUID, tweetID, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, actor uuid.UUID, tweetID string) error
	ListUserTweets(ctx context.Context, userID string, params page.Params) (*page.Page[model.Tweet], error)
}

// service implements Service
type service struct {
	tweets tweetrepo.Repository
	users  user.Repository
}

// NewService creates a new tweet Service
func NewService(tweets tweetrepo.Repository, users user.Repository) Service {
	return &service{
		tweets: tweets,
		users:  users,
	}
}

// CreateTweet posts a tweet
func (s *service) CreateTweet(ctx context.Context, actor uuid.UUID, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "content is required")
	}
	t := &model.Tweet{ID: ids.New(), OwnerID: actor, Content: content}
	if err := s.tweets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTweet replaces the content of the actor's tweet
func (s *service) UpdateTweet(ctx context.Context, actor uuid.UUID, tweetID, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "content is required")
	}
	t, err := s.owned(ctx, actor, tweetID)
	if err != nil {
		return nil, err
	}
	return s.tweets.UpdateContent(ctx, t.ID, content)
}

// DeleteTweet removes the actor's tweet
func (s *service) DeleteTweet(ctx context.Context, actor uuid.UUID, tweetID string) error {
	t, err := s.owned(ctx, actor, tweetID)
	if err != nil {
		return err
	}
	return s.tweets.Delete(ctx, t.ID)
}

// ListUserTweets lists a user's tweets. A user without tweets yields an empty page.
func (s *service) ListUserTweets(ctx context.Context, userID string, params page.Params) (*page.Page[model.Tweet], error) {
	owner, err := ids.Parse("user id", userID)
	if err != nil {
		return nil, err
	}
	w, err := tweetrepo.Sorts.Resolve(params)
	if err != nil {
		return nil, err
	}
	exists, err := s.users.Exists(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	return s.tweets.ListByOwner(ctx, owner, w)
}

func (s *service) owned(ctx context.Context, actor uuid.UUID, tweetID string) (*model.Tweet, error) {
	id, err := ids.Parse("tweet id", tweetID)
	if err != nil {
		return nil, err
	}
	t, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != actor {
		return nil, apperrors.New(apperrors.CodeForbidden, "only the author can modify this tweet")
	}
	return t, nil
}

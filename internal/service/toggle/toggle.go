// Package toggle flips like and subscription edges.
//
// Each flip is one conditional statement in the store: delete the edge if it
// exists, otherwise insert it. Unique indexes arbitrate concurrent inserts; a
// caller that loses the insert race re-issues the statement, so N concurrent
// calls from one actor leave the edge present exactly when N is odd.
package toggle

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
	"github.com/Taichi-iskw/vidshare/internal/repository/like"
	"github.com/Taichi-iskw/vidshare/internal/repository/subscription"
	"github.com/Taichi-iskw/vidshare/internal/repository/user"
)

// DefaultAttempts bounds how often a raced statement is re-issued
const DefaultAttempts = 5

// Target is the content a like points at: VideoTarget, CommentTarget or TweetTarget
type Target interface {
	target()
}

// VideoTarget addresses a video by id
type VideoTarget struct{ VideoID string }

// CommentTarget addresses a comment by id
type CommentTarget struct{ CommentID string }

// TweetTarget addresses a tweet by id
type TweetTarget struct{ TweetID string }

func (VideoTarget) target()   {}
func (CommentTarget) target() {}
func (TweetTarget) target()   {}

// Result is the edge state after a toggle
type Result struct {
	Present bool       `json:"present"`
	EdgeID  *uuid.UUID `json:"edge_id,omitempty"` // nil after a removal
}

// Engine toggles like and subscription edges
type Engine interface {
	// ToggleLike likes target if actor has not, otherwise removes the like
	ToggleLike(ctx context.Context, actor uuid.UUID, target Target) (*Result, error)

	// ToggleSubscription subscribes actor to channel if not subscribed, otherwise unsubscribes
	ToggleSubscription(ctx context.Context, actor uuid.UUID, channelID string) (*Result, error)
}

// engine implements Engine
type engine struct {
	likes         like.Repository
	subscriptions subscription.Repository
	users         user.Repository
	attempts      int
}

// NewEngine creates a toggle engine. attempts <= 0 selects DefaultAttempts.
func NewEngine(likes like.Repository, subscriptions subscription.Repository, users user.Repository, attempts int) Engine {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &engine{
		likes:         likes,
		subscriptions: subscriptions,
		users:         users,
		attempts:      attempts,
	}
}

// ToggleLike flips the like of actor on target
func (e *engine) ToggleLike(ctx context.Context, actor uuid.UUID, target Target) (*Result, error) {
	if actor == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "actor is required")
	}
	kind, targetID, err := resolveTarget(target)
	if err != nil {
		return nil, err
	}

	exists, err := e.likes.TargetExists(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.New(apperrors.CodeNotFound, kind.String()+" not found")
	}

	return e.flip(ctx, logrus.Fields{"edge": kind.String() + "_like", "actor": actor, "target": targetID},
		func(edgeID uuid.UUID) (common.ToggleResult, error) {
			return e.likes.Toggle(ctx, kind, actor, targetID, edgeID)
		})
}

// ToggleSubscription flips the subscription of actor to channel
func (e *engine) ToggleSubscription(ctx context.Context, actor uuid.UUID, channelID string) (*Result, error) {
	if actor == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "actor is required")
	}
	channel, err := ids.Parse("channel id", channelID)
	if err != nil {
		return nil, err
	}
	if channel == actor {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "cannot subscribe to your own channel")
	}

	exists, err := e.users.Exists(ctx, channel)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.New(apperrors.CodeNotFound, "channel not found")
	}

	return e.flip(ctx, logrus.Fields{"edge": "subscription", "actor": actor, "target": channel},
		func(edgeID uuid.UUID) (common.ToggleResult, error) {
			return e.subscriptions.Toggle(ctx, actor, channel, edgeID)
		})
}

// flip issues the toggle statement until it either adds or removes the edge
func (e *engine) flip(ctx context.Context, fields logrus.Fields, statement func(edgeID uuid.UUID) (common.ToggleResult, error)) (*Result, error) {
	for attempt := 1; attempt <= e.attempts; attempt++ {
		res, err := statement(ids.New())
		if err != nil {
			return nil, err
		}

		switch res.Outcome {
		case common.Added:
			id := res.EdgeID
			return &Result{Present: true, EdgeID: &id}, nil
		case common.Removed:
			return &Result{Present: false}, nil
		}

		logrus.WithFields(fields).WithField("attempt", attempt).Debug("toggle lost insert race, retrying")
		if err := ctx.Err(); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStore, "toggle interrupted")
		}
	}

	logrus.WithFields(fields).Warn("toggle attempts exhausted")
	return nil, apperrors.New(apperrors.CodeStore, "too much contention on this item, please retry")
}

func resolveTarget(target Target) (like.Kind, uuid.UUID, error) {
	var (
		kind like.Kind
		raw  string
	)
	switch t := target.(type) {
	case VideoTarget:
		kind, raw = like.KindVideo, t.VideoID
	case CommentTarget:
		kind, raw = like.KindComment, t.CommentID
	case TweetTarget:
		kind, raw = like.KindTweet, t.TweetID
	default:
		return 0, uuid.Nil, apperrors.New(apperrors.CodeInvalidArg, "like target is required")
	}

	id, err := ids.Parse(kind.String()+" id", raw)
	if err != nil {
		return 0, uuid.Nil, err
	}
	return kind, id, nil
}

// Package subscription lists the subscription graph of a channel.
package subscription

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	subrepo "github.com/Taichi-iskw/vidshare/internal/repository/subscription"
	"github.com/Taichi-iskw/vidshare/internal/repository/user"
	"github.com/Taichi-iskw/vidshare/internal/resolver"
)

// Service is interface for subscription listings
type Service interface {
	// Subscribers lists who subscribes to a channel
	Subscribers(ctx context.Context, channelID string, params page.Params) (*page.Page[model.SubscriberView], error)

	// SubscribedChannels lists the channels a user subscribes to
	SubscribedChannels(ctx context.Context, subscriberID string, params page.Params) (*page.Page[model.SubscribedChannelView], error)
}

// service implements Service
type service struct {
	subscriptions subrepo.Repository
	users         user.Repository
	resolver      *resolver.Resolver
}

// NewService creates a new subscription Service
func NewService(subscriptions subrepo.Repository, users user.Repository, res *resolver.Resolver) Service {
	return &service{
		subscriptions: subscriptions,
		users:         users,
		resolver:      res,
	}
}

func (s *service) Subscribers(ctx context.Context, channelID string, params page.Params) (*page.Page[model.SubscriberView], error) {
	channel, w, err := s.prepare(ctx, "channel id", channelID, params)
	if err != nil {
		return nil, err
	}
	result, err := s.subscriptions.ListSubscribers(ctx, channel, w)
	if err != nil {
		return nil, err
	}

	views := make([]model.SubscriberView, len(result.Items))
	for i, sub := range result.Items {
		views[i] = model.SubscriberView{SubscriptionID: sub.ID, SubscribedAt: sub.CreatedAt, Subscriber: model.PublicUser{ID: sub.SubscriberID}}
	}
	err = resolver.One(ctx, s.resolver, views, "subscription.subscriber", resolver.PublicProfile,
		func(v *model.SubscriberView) uuid.UUID { return v.Subscriber.ID },
		func(v *model.SubscriberView, u model.PublicUser) { v.Subscriber = u })
	if err != nil {
		return nil, err
	}
	return page.With(result, views), nil
}

func (s *service) SubscribedChannels(ctx context.Context, subscriberID string, params page.Params) (*page.Page[model.SubscribedChannelView], error) {
	subscriber, w, err := s.prepare(ctx, "subscriber id", subscriberID, params)
	if err != nil {
		return nil, err
	}
	result, err := s.subscriptions.ListChannels(ctx, subscriber, w)
	if err != nil {
		return nil, err
	}

	views := make([]model.SubscribedChannelView, len(result.Items))
	for i, sub := range result.Items {
		views[i] = model.SubscribedChannelView{SubscriptionID: sub.ID, SubscribedAt: sub.CreatedAt, Channel: model.PublicUser{ID: sub.ChannelID}}
	}
	err = resolver.One(ctx, s.resolver, views, "subscription.channel", resolver.PublicProfile,
		func(v *model.SubscribedChannelView) uuid.UUID { return v.Channel.ID },
		func(v *model.SubscribedChannelView, u model.PublicUser) { v.Channel = u })
	if err != nil {
		return nil, err
	}
	return page.With(result, views), nil
}

// prepare parses the user id, resolves the window and checks that the user exists
func (s *service) prepare(ctx context.Context, field, raw string, params page.Params) (uuid.UUID, page.Window, error) {
	id, err := ids.Parse(field, raw)
	if err != nil {
		return uuid.Nil, page.Window{}, err
	}
	w, err := subrepo.Sorts.Resolve(params)
	if err != nil {
		return uuid.Nil, page.Window{}, err
	}
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return uuid.Nil, page.Window{}, err
	}
	if !exists {
		return uuid.Nil, page.Window{}, apperrors.New(apperrors.CodeNotFound, "channel not found")
	}
	return id, w, nil
}

// Package app wires repositories and services over one database pool.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Taichi-iskw/vidshare/internal/config"
	"github.com/Taichi-iskw/vidshare/internal/media"
	"github.com/Taichi-iskw/vidshare/internal/repository/comment"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
	"github.com/Taichi-iskw/vidshare/internal/repository/like"
	"github.com/Taichi-iskw/vidshare/internal/repository/playlist"
	"github.com/Taichi-iskw/vidshare/internal/repository/subscription"
	"github.com/Taichi-iskw/vidshare/internal/repository/tweet"
	"github.com/Taichi-iskw/vidshare/internal/repository/user"
	"github.com/Taichi-iskw/vidshare/internal/repository/video"
	"github.com/Taichi-iskw/vidshare/internal/resolver"
	"github.com/Taichi-iskw/vidshare/internal/service/account"
	commentsvc "github.com/Taichi-iskw/vidshare/internal/service/comment"
	playlistsvc "github.com/Taichi-iskw/vidshare/internal/service/playlist"
	"github.com/Taichi-iskw/vidshare/internal/service/stats"
	subscriptionsvc "github.com/Taichi-iskw/vidshare/internal/service/subscription"
	"github.com/Taichi-iskw/vidshare/internal/service/toggle"
	tweetsvc "github.com/Taichi-iskw/vidshare/internal/service/tweet"
	videosvc "github.com/Taichi-iskw/vidshare/internal/service/video"
)

// Services holds every domain service
type Services struct {
	Accounts      account.Service
	Videos        videosvc.Service
	Comments      commentsvc.Service
	Tweets        tweetsvc.Service
	Playlists     playlistsvc.Service
	Subscriptions subscriptionsvc.Service
	Toggles       toggle.Engine
	Stats         stats.Service
}

// NewServices builds the services over pool. store receives uploaded media.
func NewServices(pool common.Pool, store media.Store, toggleAttempts int) *Services {
	users := user.NewRepository(pool)
	videos := video.NewRepository(pool)
	likes := like.NewRepository(pool)
	subscriptions := subscription.NewRepository(pool)
	res := resolver.New(pool)

	return &Services{
		Accounts:      account.NewService(users, store, res),
		Videos:        videosvc.NewService(videos, likes, store, res),
		Comments:      commentsvc.NewService(comment.NewRepository(pool), res),
		Tweets:        tweetsvc.NewService(tweet.NewRepository(pool), users),
		Playlists:     playlistsvc.NewService(playlist.NewRepository(pool), res),
		Subscriptions: subscriptionsvc.NewService(subscriptions, users, res),
		Toggles:       toggle.NewEngine(likes, subscriptions, users, toggleAttempts),
		Stats:         stats.NewService(pool),
	}
}

// Factory creates services from the loaded configuration
type Factory struct{}

// NewFactory creates a new service factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create connects to the database and object storage and returns the services
// with a cleanup function that closes the pool
func (f *Factory) Create(ctx context.Context) (*Services, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	pool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store, err := newStore(cfg.Storage)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	cleanup := func() {
		config.CloseDatabasePool(pool)
	}
	return NewServices(pool, store, cfg.ToggleAttempts), cleanup, nil
}

func newStore(cfg config.StorageConfig) (media.Store, error) {
	if cfg.Endpoint == "" {
		logrus.Debug("storage endpoint not configured, uploads are disabled")
		return media.Disabled(), nil
	}
	store, err := media.NewMinioStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return store, nil
}

package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

// Repository defines operations for Subscription persistence
type Repository interface {
	// Toggle removes the subscription of subscriber to channel if present,
	// otherwise inserts one with edgeID, in a single statement
	Toggle(ctx context.Context, subscriber, channel, edgeID uuid.UUID) (common.ToggleResult, error)

	// ListSubscribers returns one window of the channel's subscriptions
	ListSubscribers(ctx context.Context, channel uuid.UUID, w page.Window) (*page.Page[model.Subscription], error)

	// ListChannels returns one window of the subscriber's subscriptions
	ListChannels(ctx context.Context, subscriber uuid.UUID, w page.Window) (*page.Page[model.Subscription], error)
}

// Sorts lists the sortable keys of subscription listings
var Sorts = page.Spec{
	DefaultLimit: page.DefaultLimit,
	DefaultSort:  "subscribedAt",
	Sorts: map[string]string{
		"subscribedAt": "s.created_at",
	},
	IDColumn: "s.id",
}

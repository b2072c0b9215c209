package subscription

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

// toggleSQL deletes the subscription if present and otherwise inserts it.
// subscriptions_subscriber_channel_key turns a concurrent duplicate insert
// into a no-op.
const toggleSQL = `WITH removed AS (
	DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2 RETURNING id
), added AS (
	INSERT INTO subscriptions (id, subscriber_id, channel_id)
	SELECT $3::uuid, $1::uuid, $2::uuid WHERE NOT EXISTS (SELECT 1 FROM removed)
	ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	RETURNING id
)
SELECT (SELECT count(*) FROM removed), COALESCE((SELECT id::text FROM added), '')`

// subscriptionRepository implements Repository using PostgreSQL
type subscriptionRepository struct {
	pool common.Pool
}

// NewRepository creates a new subscription repository
func NewRepository(pool common.Pool) Repository {
	return &subscriptionRepository{
		pool: pool,
	}
}

// Toggle flips the subscription edge
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriber, channel, edgeID uuid.UUID) (common.ToggleResult, error) {
	return common.ScanToggle(r.pool.QueryRow(ctx, toggleSQL, subscriber, channel, edgeID), "failed to toggle subscription")
}

// ListSubscribers lists subscriptions to channel
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channel uuid.UUID, w page.Window) (*page.Page[model.Subscription], error) {
	return page.Fetch(ctx, r.pool, query("s.channel_id = ?", channel), w, "failed to list subscribers")
}

// ListChannels lists subscriptions of subscriber
func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriber uuid.UUID, w page.Window) (*page.Page[model.Subscription], error) {
	return page.Fetch(ctx, r.pool, query("s.subscriber_id = ?", subscriber), w, "failed to list subscribed channels")
}

func query(predicate string, id uuid.UUID) page.Query[model.Subscription] {
	return page.Query[model.Subscription]{
		From:    "subscriptions s",
		Columns: "s.id, s.subscriber_id, s.channel_id, s.created_at",
		Filter:  (&page.Filter{}).Where(predicate, id),
		Scan: func(row pgx.Rows) (model.Subscription, error) {
			var s model.Subscription
			err := row.Scan(&s.ID, &s.SubscriberID, &s.ChannelID, &s.CreatedAt)
			return s, err
		},
	}
}

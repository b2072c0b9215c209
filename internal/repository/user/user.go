package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
)

// Repository defines operations for User persistence
type Repository interface {
	// Create inserts a new user; duplicate username or email is a conflict
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername retrieves a user by normalized username
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Exists reports whether a user with the ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// UpdateAccount applies the whitelisted account fields
	UpdateAccount(ctx context.Context, id uuid.UUID, fields AccountUpdate) (*model.User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error

	// UpdateAvatar replaces the avatar reference
	UpdateAvatar(ctx context.Context, id uuid.UUID, ref string) (*model.User, error)

	// UpdateCover replaces the cover image reference
	UpdateCover(ctx context.Context, id uuid.UUID, ref string) (*model.User, error)

	// WatchHistory returns one window of the user's watch history, most recent first by default.
	// Other channels' unpublished videos are left out; join runs on the same snapshot.
	WatchHistory(ctx context.Context, id uuid.UUID, w page.Window, join page.Join[HistoryEntry]) (*page.Page[HistoryEntry], error)

	// Profile returns the channel profile for username as seen by viewer (uuid.Nil for anonymous)
	Profile(ctx context.Context, username string, viewer uuid.UUID) (*model.ChannelProfile, error)
}

// AccountUpdate holds the updatable account fields; nil fields are left unchanged
type AccountUpdate struct {
	DisplayName *string
	Email       *string
}

// HistoryEntry is one watched video
type HistoryEntry struct {
	VideoID   uuid.UUID
	WatchedAt time.Time
}

// HistorySorts lists the sortable keys of a watch history listing
var HistorySorts = page.Spec{
	DefaultLimit: page.DefaultLimit,
	DefaultSort:  "watchedAt",
	Sorts: map[string]string{
		"watchedAt": "h.watched_at",
	},
	IDColumn: "h.video_id",
}

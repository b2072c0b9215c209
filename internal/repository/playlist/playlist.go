package playlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

// Repository defines operations for Playlist persistence.
// Playlists returned by the repository carry their video ids in insertion order.
type Repository interface {
	// Create inserts a new, empty playlist
	Create(ctx context.Context, playlist *model.Playlist) error

	// GetByID retrieves a playlist and its video ids
	GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error)

	// View retrieves a playlist and its video ids and runs join on the same snapshot
	View(ctx context.Context, id uuid.UUID, join func(ctx context.Context, q common.Querier, p *model.Playlist) error) (*model.Playlist, error)

	// Update applies the whitelisted fields and returns the updated playlist
	Update(ctx context.Context, id uuid.UUID, fields Update) (*model.Playlist, error)

	// Delete deletes a playlist and its entries
	Delete(ctx context.Context, id uuid.UUID) error

	// AddVideo appends a video; the same video may appear more than once
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error

	// RemoveVideo removes every occurrence of a video and returns how many were removed
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (int64, error)

	// ListByOwner returns one window of a user's playlists
	ListByOwner(ctx context.Context, ownerID uuid.UUID, w page.Window) (*page.Page[model.Playlist], error)
}

// Update holds the updatable fields of a playlist; nil fields are left unchanged
type Update struct {
	Name        *string
	Description *string
}

// Sorts lists the sortable keys of a playlist listing
var Sorts = page.Spec{
	DefaultLimit: page.DefaultLimit,
	DefaultSort:  "createdAt",
	Sorts: map[string]string{
		"createdAt": "p.created_at",
		"updatedAt": "p.updated_at",
		"name":      "p.name",
	},
	IDColumn: "p.id",
}

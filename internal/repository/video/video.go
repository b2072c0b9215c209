package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
)

// Repository defines operations for Video persistence
type Repository interface {
	// Create inserts a new video and fills its generated fields
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// Update applies the whitelisted fields and returns the updated video
	Update(ctx context.Context, id uuid.UUID, fields Update) (*model.Video, error)

	// TogglePublished flips the published flag and returns the new value
	TogglePublished(ctx context.Context, id uuid.UUID) (bool, error)

	// Delete deletes a video. Likes, comments, playlist entries and
	// watch-history entries referencing it are removed with it.
	Delete(ctx context.Context, id uuid.UUID) error

	// RecordView increments the view count and moves the video to the front
	// of the viewer's watch history in one transaction. Another channel's
	// unpublished video is not found.
	RecordView(ctx context.Context, videoID, viewerID uuid.UUID) error

	// List returns one window of videos matching the filter
	List(ctx context.Context, filter ListFilter, w page.Window) (*page.Page[model.Video], error)
}

// Update holds the updatable fields of a video; nil fields are left unchanged
type Update struct {
	Title        *string
	Description  *string
	ThumbnailRef *string
}

// ListFilter narrows a video listing
type ListFilter struct {
	// Query matches title or description, case-insensitively
	Query string
	// OwnerUsername restricts to one channel by username
	OwnerUsername string
	// OwnerID restricts to one channel by id
	OwnerID uuid.UUID
	// PublishedOnly hides unpublished videos
	PublishedOnly bool
}

// Sorts lists the sortable keys of a video listing
var Sorts = page.Spec{
	DefaultLimit: page.DefaultLimit,
	DefaultSort:  "createdAt",
	Sorts: map[string]string{
		"createdAt": "v.created_at",
		"views":     "v.view_count",
		"duration":  "v.duration_seconds",
		"title":     "v.title",
	},
	IDColumn: "v.id",
}

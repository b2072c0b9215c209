package comment

import (
	"context"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
)

// Repository defines operations for Comment persistence
type Repository interface {
	// Create inserts a new comment and fills its timestamps
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID retrieves a comment by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// UpdateContent replaces the content of a comment
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error)

	// Delete deletes a comment and the likes on it
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByVideo returns one window of the comments on a video
	ListByVideo(ctx context.Context, videoID uuid.UUID, w page.Window) (*page.Page[model.Comment], error)
}

// Sorts lists the sortable keys of a comment listing
var Sorts = page.Spec{
	DefaultLimit: page.DefaultCommentLimit,
	DefaultSort:  "createdAt",
	Sorts: map[string]string{
		"createdAt": "c.created_at",
		"updatedAt": "c.updated_at",
	},
	IDColumn: "c.id",
}

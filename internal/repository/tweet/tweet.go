package tweet

import (
	"context"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
)

// Repository defines operations for Tweet persistence
type Repository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, w page.Window) (*page.Page[model.Tweet], error)
}

// Sorts lists the sortable keys of a tweet listing
var Sorts = page.Spec{
	DefaultLimit: page.DefaultLimit,
	DefaultSort:  "createdAt",
	Sorts: map[string]string{
		"createdAt": "t.created_at",
		"updatedAt": "t.updated_at",
	},
	IDColumn: "t.id",
}

package like

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

// Kind identifies the content type a like points at
type Kind int

const (
	KindVideo Kind = iota
	KindComment
	KindTweet
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindComment:
		return "comment"
	case KindTweet:
		return "tweet"
	default:
		return "unknown"
	}
}

// Repository defines operations for Like persistence
type Repository interface {
	// Toggle removes the like of actor on target if present, otherwise inserts
	// one with edgeID, in a single statement
	Toggle(ctx context.Context, kind Kind, actor, target, edgeID uuid.UUID) (common.ToggleResult, error)

	// TargetExists reports whether the liked content exists
	TargetExists(ctx context.Context, kind Kind, target uuid.UUID) (bool, error)

	// LikedVideos returns one window of the videos actor likes that actor may
	// see: published ones and actor's own. join runs on the same snapshot.
	LikedVideos(ctx context.Context, actor uuid.UUID, w page.Window, join page.Join[LikedVideo]) (*page.Page[LikedVideo], error)
}

// LikedVideo is one video like
type LikedVideo struct {
	LikeID  uuid.UUID
	VideoID uuid.UUID
	LikedAt time.Time
}

// LikedSorts lists the sortable keys of a liked-videos listing
var LikedSorts = page.Spec{
	DefaultLimit: page.DefaultLimit,
	DefaultSort:  "likedAt",
	Sorts: map[string]string{
		"likedAt": "l.created_at",
	},
	IDColumn: "l.id",
}

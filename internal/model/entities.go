package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. A user is also a channel.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"` // lower-cased, unique
	Email        string    `json:"email" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	AvatarRef    string    `json:"avatar" db:"avatar_ref"`
	CoverRef     string    `json:"cover_image" db:"cover_ref"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Video represents an uploaded video
type Video struct {
	ID              uuid.UUID `json:"id" db:"id"`
	OwnerID         uuid.UUID `json:"owner_id" db:"owner_id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	MediaRef        string    `json:"video_file" db:"media_ref"`
	ThumbnailRef    string    `json:"thumbnail" db:"thumbnail_ref"`
	DurationSeconds float64   `json:"duration" db:"duration_seconds"`
	ViewCount       int64     `json:"views" db:"view_count"`
	IsPublished     bool      `json:"is_published" db:"is_published"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Comment represents a comment on a video
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VideoID   uuid.UUID `json:"video_id" db:"video_id"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Tweet represents a short text post
type Tweet struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Playlist represents an ordered collection of videos. VideoIDs keeps insertion
// order and may contain the same video more than once.
type Playlist struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	OwnerID     uuid.UUID   `json:"owner_id" db:"owner_id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	VideoIDs    []uuid.UUID `json:"videos" db:"-"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// Subscription is the edge between a subscriber and a channel
type Subscription struct {
	ID           uuid.UUID `json:"id" db:"id"`
	SubscriberID uuid.UUID `json:"subscriber_id" db:"subscriber_id"`
	ChannelID    uuid.UUID `json:"channel_id" db:"channel_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

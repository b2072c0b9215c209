package model

import (
	"time"

	"github.com/google/uuid"
)

// PublicUser is the projected, secret-free view of a User embedded in other views.
// Fields outside the requested projection are left empty and omitted from JSON.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
}

// VideoView is a video with its owner inlined
type VideoView struct {
	Video
	Owner PublicUser `json:"owner"`
}

// CommentView is a comment with its author inlined
type CommentView struct {
	Comment
	Owner PublicUser `json:"owner"`
}

// SubscriberView is one subscriber of a channel
type SubscriberView struct {
	SubscriptionID uuid.UUID  `json:"subscription_id"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	Subscriber     PublicUser `json:"subscriber"`
}

// SubscribedChannelView is one channel a user subscribes to
type SubscribedChannelView struct {
	SubscriptionID uuid.UUID  `json:"subscription_id"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	Channel        PublicUser `json:"channel"`
}

// LikedVideoView is a liked video with its owner inlined
type LikedVideoView struct {
	LikeID  uuid.UUID `json:"like_id"`
	LikedAt time.Time `json:"liked_at"`
	Video   VideoView `json:"video"`
}

// PlaylistView is a playlist with its videos resolved in display order
type PlaylistView struct {
	Playlist
	Owner  PublicUser  `json:"owner"`
	Videos []VideoView `json:"video_details"`
}

// ChannelStats is the rollup for one channel
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalTweets      int64 `json:"total_tweets"`
}

// ChannelProfile is the public profile of a channel as seen by a viewer
type ChannelProfile struct {
	PublicUser
	SubscriberCount   int64 `json:"subscribers_count"`
	SubscribedToCount int64 `json:"channels_subscribed_to_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}

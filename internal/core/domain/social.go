package domain

import "time"

// Tweet is a short text post attached to a user profile.
type Tweet struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Comment belongs to exactly one video.
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	VideoID   string    `json:"video_id" bson:"video_id"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// LikeTarget names the kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like records one user liking one target. Likes toggle: liking an already
// liked target removes the like.
type Like struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Target    LikeTarget `json:"target" bson:"target"`
	TargetID  string     `json:"target_id" bson:"target_id"`
	LikedBy   string     `json:"liked_by" bson:"liked_by"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// ViewEvent is a single playback view awaiting asynchronous counting.
type ViewEvent struct {
	VideoID  string
	ViewerID string
	At       time.Time
}

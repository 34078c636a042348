package domain

import "time"

// Video is the core content aggregate. VideoFile and Thumbnail keep their
// blob-store deletion refs so the owning record can clean up after itself
// when it is removed.
type Video struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	VideoFile   Asset     `json:"video_file" bson:"video_file"`
	Thumbnail   Asset     `json:"thumbnail" bson:"thumbnail"`
	Views       int64     `json:"views" bson:"views"`
	Published   bool      `json:"published" bson:"published"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

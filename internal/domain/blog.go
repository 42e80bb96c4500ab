package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog statuses.
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

// Comment is immutable once created except for its own likes counter.
// ReplyTo references another comment id within the same blog; it is kept as
// an opaque reference and never validated for existence.
type Comment struct {
	ID        string    `json:"id" bson:"id"`
	Author    string    `json:"author" bson:"author"`
	AuthorID  string    `json:"authorId,omitempty" bson:"authorId,omitempty"`
	Content   string    `json:"content" bson:"content"`
	ReplyTo   string    `json:"replyTo,omitempty" bson:"replyTo,omitempty"`
	Likes     int64     `json:"likes" bson:"likes"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Blog is a shared mutable document: reaction sets and counters are mutated
// concurrently through guarded single-operation updates, so at rest
// Likes == len(LikedBy) always holds.
type Blog struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Content      string             `json:"content" bson:"content"`
	Author       string             `json:"author" bson:"author"`
	AuthorID     string             `json:"authorId" bson:"authorId"`
	Category     string             `json:"category,omitempty" bson:"category,omitempty"`
	Tags         []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Image        string             `json:"image,omitempty" bson:"image,omitempty"`
	Status       string             `json:"status" bson:"status"`
	Views        int64              `json:"views" bson:"views"`
	Likes        int64              `json:"likes" bson:"likes"`
	LikedBy      []string           `json:"likedBy" bson:"likedBy"`
	BookmarkedBy []string           `json:"bookmarkedBy" bson:"bookmarkedBy"`
	Comments     []Comment          `json:"comments" bson:"comments"`
	ReadTime     int                `json:"readTime" bson:"readTime"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

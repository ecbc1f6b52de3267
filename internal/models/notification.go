// Package models contains data structures for the application's domain models.
package models

import "time"

// NotificationKind classifies what triggered a notification.
type NotificationKind string

const (
	// NotificationKindLike is recorded when someone likes a post.
	NotificationKindLike NotificationKind = "like"
	// NotificationKindComment is recorded when someone comments on a post.
	NotificationKindComment NotificationKind = "comment"
	// NotificationKindFollow is recorded when someone follows a user.
	NotificationKindFollow NotificationKind = "follow"
	// NotificationKindPost is recorded for the author on post creation.
	NotificationKindPost NotificationKind = "post"
)

// Notification is a durable, per-recipient record of a social action.
// Self-triggered likes and comments are never recorded; the only
// self-notification is the author's own post creation.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	ActorID     uint             `gorm:"not null" json:"actor_id"`
	Kind        NotificationKind `gorm:"type:varchar(20);not null" json:"kind"`
	PostID      *uint            `gorm:"index" json:"post_id,omitempty"`
	Message     string           `gorm:"not null" json:"message"`
	Read        bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time        `json:"created_at"`

	Actor User  `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Post  *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

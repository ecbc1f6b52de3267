// Package models contains data structures for the application's domain models.
package models

import "time"

// Like represents a user's like on a post. The combination of UserID and
// PostID must be unique; toggling is implemented at the service layer.
// Username is a snapshot of the liker's username at the time of the like.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	Username  string    `gorm:"not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in the Ripple application.
//
// AuthorName is a snapshot of the author's username captured at creation
// time. Later username changes do not rewrite old posts; the historical
// display name is intentional.
type Post struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	AuthorName string `gorm:"not null" json:"author_name"`
	Text       string `gorm:"type:text" json:"text"`
	ImageURL   string `json:"image_url"`
	User       User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Likes    []Like    `gorm:"foreignKey:PostID" json:"likes"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

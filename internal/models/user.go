// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user account in the Ripple application.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Username   string         `gorm:"unique;not null" json:"username"`
	Email      string         `gorm:"unique;not null" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	Bio        string         `json:"bio"`
	Avatar     string         `json:"avatar"`
	CoverImage string         `json:"cover_image"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Posts      []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`

	// Followers and Following are resolved from the follows table at read time.
	Followers []UserSummary `gorm:"-" json:"followers"`
	Following []UserSummary `gorm:"-" json:"following"`
}

// UserSummary is the public sub-view of a user embedded in profiles and
// notifications: identity plus display fields, never credentials.
type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

// Summary returns the public sub-view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Bio:      u.Bio,
	}
}

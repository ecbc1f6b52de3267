// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows
// FolloweeID. Keeping the edge as a single row (rather than mirrored lists on
// both user records) makes follow/unfollow atomic and rules out one-sided
// edges after a crash. Follower and following lists are derived by join.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

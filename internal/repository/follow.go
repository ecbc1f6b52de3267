package repository

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations.
// A follow is a single directed edge row, so creating and removing one
// is atomic without any cross-row bookkeeping.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uint) (bool, error)
	Delete(ctx context.Context, followerID, followeeID uint) (bool, error)
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge if absent and reports whether a new edge was made.
func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		observability.FollowEdgeChanges.WithLabelValues("follow").Inc()
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the edge if present and reports whether one was removed.
func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		observability.FollowEdgeChanges.WithLabelValues("unfollow").Inc()
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	var followers []models.UserSummary
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name, users.username, users.bio").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ? AND users.deleted_at IS NULL", userID).
		Order("follows.created_at DESC").
		Scan(&followers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return followers, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	var following []models.UserSummary
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name, users.username, users.bio").
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ? AND users.deleted_at IS NULL", userID).
		Order("follows.created_at DESC").
		Scan(&following).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return following, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

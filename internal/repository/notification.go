package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Every mutation is scoped to the recipient so one user can never touch
// another user's notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListForUser(ctx context.Context, recipientID uint, limit, offset int) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uint) error
	MarkAllRead(ctx context.Context, recipientID uint) error
	Delete(ctx context.Context, id, recipientID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.NotificationsRecorded.WithLabelValues(string(notification.Kind)).Inc()
	cache.InvalidateUnreadCount(ctx, notification.RecipientID)
	return nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, recipientID uint, limit, offset int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Preload("Post").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64

	err := cache.Aside(ctx, cache.UnreadCountKey(recipientID), &count, cache.UnreadCountTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Notification{}).
			Where("recipient_id = ? AND read = ?", recipientID, false).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Notification", id)
	}
	cache.InvalidateUnreadCount(ctx, recipientID)
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUnreadCount(ctx, recipientID)
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, recipientID uint) error {
	var notification models.Notification
	err := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Notification", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUnreadCount(ctx, recipientID)
	return nil
}

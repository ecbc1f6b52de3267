// Package service holds the application's business rules between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"log/slog"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// Notifier records activity notifications. Services that produce activity
// depend on this instead of the concrete NotificationService.
type Notifier interface {
	NotifyAsync(ctx context.Context, in NotifyInput)
}

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

type NotifyInput struct {
	RecipientID uint
	ActorID     uint
	Kind        models.NotificationKind
	PostID      *uint
	Message     string
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify records a notification. Actions on your own content are not
// recorded, except new-post fanout where actor and recipient may match.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) error {
	if in.RecipientID == in.ActorID && in.Kind != models.NotificationKindPost {
		return nil
	}
	return s.notificationRepo.Create(ctx, &models.Notification{
		RecipientID: in.RecipientID,
		ActorID:     in.ActorID,
		Kind:        in.Kind,
		PostID:      in.PostID,
		Message:     in.Message,
	})
}

// NotifyAsync records a notification without failing the caller's request.
// Notification loss is acceptable; losing the triggering action is not.
func (s *NotificationService) NotifyAsync(ctx context.Context, in NotifyInput) {
	if err := s.Notify(ctx, in); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to record notification",
			slog.Uint64("recipient_id", uint64(in.RecipientID)),
			slog.String("kind", string(in.Kind)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *NotificationService) ListNotifications(ctx context.Context, recipientID uint, limit, offset int) ([]*models.Notification, error) {
	return s.notificationRepo.ListForUser(ctx, recipientID, limit, offset)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, recipientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uint) error {
	return s.notificationRepo.MarkRead(ctx, id, recipientID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, id, recipientID uint) error {
	return s.notificationRepo.Delete(ctx, id, recipientID)
}

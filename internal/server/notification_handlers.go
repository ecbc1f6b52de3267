package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	notifications, err := s.notificationService.ListNotifications(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(notifications)
}

// GetUnreadCount handles GET /api/notifications/unread/count.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"count": count,
	})
}

// MarkNotificationRead handles PUT /api/notifications/:id/read.
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.notificationService.MarkRead(c.Context(), id, currentUserID(c)); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "notification read",
	})
}

// MarkAllNotificationsRead handles PUT /api/notifications/read/all.
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.Context(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "all notifications read",
	})
}

// DeleteNotification handles DELETE /api/notifications/:id.
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.notificationService.DeleteNotification(c.Context(), id, currentUserID(c)); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "notification deleted",
	})
}

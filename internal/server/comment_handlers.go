package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments and returns the updated
// post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, svcErr := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		UserID: currentUserID(c),
		PostID: postID,
		Text:   req.Text,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetComments handles GET /api/posts/:id/comments.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, svcErr := s.commentRepo.ListByPost(c.Context(), postID)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		PostID:    postID,
		CommentID: commentID,
	}); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "comment deleted",
	})
}

package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// The list view only exposes public summaries.
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return c.JSON(summaries)
}

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:id.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, svcErr := s.userService.GetProfile(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(profile)
}

// GetUserPosts handles GET /api/users/:id/posts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)

	posts, svcErr := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Limit:         p.Limit,
		Offset:        p.Offset,
		CurrentUserID: viewerID,
		Filter:        service.PostFilterAll,
		AuthorID:      id,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(posts)
}

// UpdateMyProfile handles PUT /api/users/update/profile.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username   string  `json:"username"`
		Bio        *string `json:"bio"`
		Avatar     string  `json:"avatar"`
		CoverImage string  `json:"cover_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:     currentUserID(c),
		Username:   req.Username,
		Bio:        req.Bio,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// FollowUser handles PUT /api/users/:id/follow.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.followService.Follow(c.Context(), currentUserID(c), id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	profile, svcErr := s.userService.GetProfile(c.Context(), currentUserID(c))
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(profile)
}

// UnfollowUser handles PUT /api/users/:id/unfollow.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.followService.Unfollow(c.Context(), currentUserID(c), id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	profile, svcErr := s.userService.GetProfile(c.Context(), currentUserID(c))
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(profile)
}

// GetFollowers handles GET /api/users/:id/followers.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followers, svcErr := s.followService.ListFollowers(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:id/following.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, svcErr := s.followService.ListFollowing(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(following)
}

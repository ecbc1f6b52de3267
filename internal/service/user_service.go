package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type UpdateProfileInput struct {
	UserID     uint
	Username   string
	Bio        *string
	Avatar     string
	CoverImage string
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns a user with recent posts and resolved follower and
// following summaries.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithPosts(ctx, id, 20)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.ListFollowers(ctx, id)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.ListFollowing(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Followers = followers
	user.Following = following
	return user, nil
}

const maxBioLen = 500

// UpdateProfile applies a partial update to the caller's own profile.
// Username changes are case-folded and re-checked for uniqueness.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		username := strings.ToLower(strings.TrimSpace(in.Username))
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if username != user.Username {
			existing, err := s.userRepo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, models.NewConflictError("username already in use")
			}
			user.Username = username
		}
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.CoverImage != "" {
		user.CoverImage = in.CoverImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

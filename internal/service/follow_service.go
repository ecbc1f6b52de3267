package service

import (
	"context"
	"fmt"

	"ripple/internal/models"
	"ripple/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifier   Notifier
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// Follow adds a directed edge from follower to followee. Following again
// is a no-op, following yourself is rejected.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewInvalidOperationError("cannot follow yourself")
	}

	// Resolves to NotFound if the target does not exist.
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	created, err := s.followRepo.Create(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	actor, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return err
	}
	s.notifier.NotifyAsync(ctx, NotifyInput{
		RecipientID: followeeID,
		ActorID:     followerID,
		Kind:        models.NotificationKindFollow,
		Message:     fmt.Sprintf("%s started following you", actor.Username),
	})
	return nil
}

// Unfollow removes the edge. Unfollowing someone you don't follow is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewInvalidOperationError("cannot unfollow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}
	_, err := s.followRepo.Delete(ctx, followerID, followeeID)
	return err
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

func (s *FollowService) ListFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}

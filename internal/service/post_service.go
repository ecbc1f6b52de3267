package service

import (
	"context"
	"fmt"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

type PostService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	notifier   Notifier
}

type CreatePostInput struct {
	UserID   uint
	Text     string
	ImageURL string
}

// PostFilter selects which slice of the feed a listing returns.
type PostFilter string

const (
	PostFilterAll   PostFilter = "all"
	PostFilterMine  PostFilter = "mine"
	PostFilterLiked PostFilter = "liked"
)

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Filter        PostFilter
	// AuthorID narrows the listing to one author. Only meaningful with
	// PostFilterAll.
	AuthorID uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notifier Notifier,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		notifier:   notifier,
	}
}

const maxPostTextLen = 5000

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && strings.TrimSpace(in.ImageURL) == "" {
		return nil, models.NewValidationError("post needs text or an image")
	}
	if len(text) > maxPostTextLen {
		return nil, models.NewValidationError("post text too long (max 5000 characters)")
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:     author.ID,
		AuthorName: author.Name,
		Text:       text,
		ImageURL:   strings.TrimSpace(in.ImageURL),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// The author gets a record of their own post; the only kind where
	// recipient == actor is allowed.
	s.notifier.NotifyAsync(ctx, NotifyInput{
		RecipientID: author.ID,
		ActorID:     author.ID,
		Kind:        models.NotificationKindPost,
		PostID:      &post.ID,
		Message:     "you shared a new post",
	})
	s.fanOutToFollowers(ctx, author, post)

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// fanOutToFollowers records a new-post notification for each follower.
func (s *PostService) fanOutToFollowers(ctx context.Context, author *models.User, post *models.Post) {
	followers, err := s.followRepo.ListFollowers(ctx, author.ID)
	if err != nil {
		return
	}
	for _, f := range followers {
		s.notifier.NotifyAsync(ctx, NotifyInput{
			RecipientID: f.ID,
			ActorID:     author.ID,
			Kind:        models.NotificationKindPost,
			PostID:      &post.ID,
			Message:     fmt.Sprintf("%s shared a new post", author.Username),
		})
	}
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	switch in.Filter {
	case PostFilterMine:
		if in.CurrentUserID == 0 {
			return nil, models.NewUnauthorizedError("login required")
		}
		return s.postRepo.GetByUserID(ctx, in.CurrentUserID, limit, in.Offset, in.CurrentUserID)
	case PostFilterLiked:
		if in.CurrentUserID == 0 {
			return nil, models.NewUnauthorizedError("login required")
		}
		return s.postRepo.GetLikedByUser(ctx, in.CurrentUserID, limit, in.Offset)
	default:
		if in.AuthorID != 0 {
			return s.postRepo.GetByUserID(ctx, in.AuthorID, limit, in.Offset, in.CurrentUserID)
		}
		return s.postRepo.List(ctx, limit, in.Offset, in.CurrentUserID)
	}
}

// ToggleLike flips the caller's like on a post and returns the fresh post.
// Running it twice always lands back in the starting state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		actor, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.postRepo.Like(ctx, userID, postID, actor.Username); err != nil {
			return nil, err
		}
		s.notifier.NotifyAsync(ctx, NotifyInput{
			RecipientID: post.UserID,
			ActorID:     userID,
			Kind:        models.NotificationKindLike,
			PostID:      &post.ID,
			Message:     fmt.Sprintf("%s liked your post", actor.Username),
		})
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("only the author can delete a post")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

package service

import (
	"context"
	"fmt"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

type AddCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

const maxCommentLen = 2000

// AddComment attaches a comment and returns the updated post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("comment too long (max 2000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   post.ID,
		UserID:   author.ID,
		Username: author.Username,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifier.NotifyAsync(ctx, NotifyInput{
		RecipientID: post.UserID,
		ActorID:     author.ID,
		Kind:        models.NotificationKindComment,
		PostID:      &post.ID,
		Message:     fmt.Sprintf("%s commented on your post", author.Username),
	})

	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

// DeleteComment removes a comment. Only its author may do so, and only
// through the post it belongs to.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.PostID != in.PostID {
		return models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return models.NewForbiddenError("only the author can delete a comment")
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}

package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByIDWithPosts  func(context.Context, uint, int) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	createFn          func(context.Context, *models.User) error
	updateFn          func(context.Context, *models.User) error
	listFn            func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithPosts(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Stub User", Username: "stubuser"}, nil
		},
		getByIDWithPosts: func(_ context.Context, id uint, _ int) (*models.User, error) {
			return &models.User{ID: id, Name: "Stub User", Username: "stubuser"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn    func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	getLikedByUserFn func(context.Context, uint, int, int) ([]*models.Post, error)
	listFn           func(context.Context, int, int, uint) ([]*models.Post, error)
	deleteFn         func(context.Context, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint, string) error
	unlikeFn         func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) GetLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.getLikedByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint, username string) error {
	return s.likeFn(ctx, userID, postID, username)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		getLikedByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listFn:    func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:    func(_ context.Context, _, _ uint, _ string) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn         func(context.Context, uint, uint) (bool, error)
	deleteFn         func(context.Context, uint, uint) (bool, error)
	existsFn         func(context.Context, uint, uint) (bool, error)
	listFollowersFn  func(context.Context, uint) ([]models.UserSummary, error)
	listFollowingFn  func(context.Context, uint) ([]models.UserSummary, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.createFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.listFollowingFn(ctx, userID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		deleteFn:         func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:         func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listFollowersFn:  func(_ context.Context, _ uint) ([]models.UserSummary, error) { return nil, nil },
		listFollowingFn:  func(_ context.Context, _ uint) ([]models.UserSummary, error) { return nil, nil },
		countFollowersFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFollowingFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listForUserFn func(context.Context, uint, int, int) ([]*models.Notification, error)
	unreadCountFn func(context.Context, uint) (int64, error)
	markReadFn    func(context.Context, uint, uint) error
	markAllReadFn func(context.Context, uint) error
	deleteFn      func(context.Context, uint, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) ListForUser(ctx context.Context, recipientID uint, limit, offset int) ([]*models.Notification, error) {
	return s.listForUserFn(ctx, recipientID, limit, offset)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.unreadCountFn(ctx, recipientID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id, recipientID uint) error {
	return s.markReadFn(ctx, id, recipientID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.markAllReadFn(ctx, recipientID)
}
func (s *notificationRepoStub) Delete(ctx context.Context, id, recipientID uint) error {
	return s.deleteFn(ctx, id, recipientID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		listForUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Notification, error) {
			return nil, nil
		},
		unreadCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markReadFn:    func(_ context.Context, _, _ uint) error { return nil },
		markAllReadFn: func(_ context.Context, _ uint) error { return nil },
		deleteFn:      func(_ context.Context, _, _ uint) error { return nil },
	}
}

// notifierStub captures notifications for assertions.
type notifierStub struct {
	sent []NotifyInput
}

func (s *notifierStub) NotifyAsync(_ context.Context, in NotifyInput) {
	s.sent = append(s.sent, in)
}

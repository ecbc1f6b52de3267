package service

import (
	"context"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopUserRepo(), noopFollowRepo(), &notifierStub{})
	ctx := context.Background()

	t.Run("empty post", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1})
		assertValidationError(t, err)
	})

	t.Run("whitespace only", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "   \n\t "})
		assertValidationError(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: strings.Repeat("x", 5001)})
		assertValidationError(t, err)
	})

	t.Run("image only is allowed", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, ImageURL: "/uploads/pic.png"})
		assert.NoError(t, err)
	})
}

func TestPostService_CreatePost_SnapshotsAuthorName(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Ada Lovelace", Username: "ada"}, nil
	}
	var created *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 42
		created = p
		return nil
	}

	svc := NewPostService(postRepo, userRepo, noopFollowRepo(), &notifierStub{})
	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 5, Text: "hello"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Ada Lovelace", created.AuthorName)
	assert.Equal(t, uint(5), created.UserID)
}

func TestPostService_CreatePost_NotifiesAuthorAndFollowers(t *testing.T) {
	t.Parallel()

	followRepo := noopFollowRepo()
	followRepo.listFollowersFn = func(_ context.Context, _ uint) ([]models.UserSummary, error) {
		return []models.UserSummary{{ID: 2, Username: "fan1"}, {ID: 3, Username: "fan2"}}, nil
	}
	notifier := &notifierStub{}

	svc := NewPostService(noopPostRepo(), noopUserRepo(), followRepo, notifier)
	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Text: "fresh"})
	require.NoError(t, err)

	// The author's own record comes first, then one per follower.
	require.Len(t, notifier.sent, 3)
	for _, n := range notifier.sent {
		assert.Equal(t, models.NotificationKindPost, n.Kind)
		assert.Equal(t, uint(1), n.ActorID)
	}
	assert.Equal(t, uint(1), notifier.sent[0].RecipientID)
	assert.Equal(t, uint(2), notifier.sent[1].RecipientID)
	assert.Equal(t, uint(3), notifier.sent[2].RecipientID)
}

func TestPostService_ToggleLike(t *testing.T) {
	t.Parallel()

	t.Run("like notifies the author", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 9}, nil
		}
		var likedWith string
		postRepo.likeFn = func(_ context.Context, _, _ uint, username string) error {
			likedWith = username
			return nil
		}
		notifier := &notifierStub{}

		svc := NewPostService(postRepo, noopUserRepo(), noopFollowRepo(), notifier)
		_, err := svc.ToggleLike(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, "stubuser", likedWith)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, models.NotificationKindLike, notifier.sent[0].Kind)
		assert.Equal(t, uint(9), notifier.sent[0].RecipientID)
	})

	t.Run("second toggle unlikes silently", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		unliked := false
		postRepo.unlikeFn = func(_ context.Context, _, _ uint) error {
			unliked = true
			return nil
		}
		notifier := &notifierStub{}

		svc := NewPostService(postRepo, noopUserRepo(), noopFollowRepo(), notifier)
		_, err := svc.ToggleLike(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.True(t, unliked)
		assert.Empty(t, notifier.sent, "unliking must not notify")
	})
}

func TestPostService_DeletePost_AuthorOnly(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7}, nil
	}
	svc := NewPostService(postRepo, noopUserRepo(), noopFollowRepo(), &notifierStub{})
	ctx := context.Background()

	err := svc.DeletePost(ctx, DeletePostInput{UserID: 8, PostID: 1})
	assertAppErrorCode(t, err, "FORBIDDEN")

	err = svc.DeletePost(ctx, DeletePostInput{UserID: 7, PostID: 1})
	assert.NoError(t, err)
}

func TestPostService_ListPosts_FiltersNeedAuth(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopUserRepo(), noopFollowRepo(), &notifierStub{})
	ctx := context.Background()

	_, err := svc.ListPosts(ctx, ListPostsInput{Filter: PostFilterMine})
	assertAppErrorCode(t, err, "UNAUTHORIZED")

	_, err = svc.ListPosts(ctx, ListPostsInput{Filter: PostFilterLiked})
	assertAppErrorCode(t, err, "UNAUTHORIZED")

	_, err = svc.ListPosts(ctx, ListPostsInput{Filter: PostFilterAll})
	assert.NoError(t, err)
}

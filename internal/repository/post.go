package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	GetLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint, username string) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// feedPageSize is the default page size handlers request; only this page
// of the anonymous feed is cached under FeedKey.
const feedPageSize = 20

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}
	return db.Select(selectQuery + ", false as liked")
}

// withAssociations preloads the author and the live comment and like rows.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Likes")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		if err := withAssociations(r.applyPostDetails(r.db.WithContext(ctx), currentUserID)).
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		// The anonymous view carries no per-viewer liked flag, so it is safe
		// to share a cache entry.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := withAssociations(r.applyPostDetails(r.db.WithContext(ctx), currentUserID)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := withAssociations(r.applyPostDetails(r.db.WithContext(ctx), userID)).
		Joins("JOIN likes viewer_likes ON viewer_likes.post_id = posts.id").
		Where("viewer_likes.user_id = ?", userID).
		Order("viewer_likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post

	fetch := func() error {
		err := withAssociations(r.applyPostDetails(r.db.WithContext(ctx), currentUserID)).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the anonymous default first page is shared enough to cache;
	// every other variant carries a viewer-specific liked flag or a
	// different window.
	if currentUserID == 0 && offset == 0 && limit == feedPageSize {
		if err := cache.Aside(ctx, cache.FeedKey(), &posts, cache.FeedTTL, fetch); err != nil {
			return nil, err
		}
		return posts, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a post together with its likes and comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint, username string) error {
	// INSERT ... ON CONFLICT DO NOTHING keeps concurrent double-taps from
	// producing duplicate key errors.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, username, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID, username,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

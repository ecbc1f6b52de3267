// Package seed populates the database with demo data for development
// and testing. Not wired into the production server.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them. It is a thin helper
// used by the seeder and by tests that need realistic fixtures.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// seedPassword is the known password for every seeded account, so
// developers can log in as any generated user.
const seedPassword = "password123"

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))

	user := &models.User{
		Name:       name,
		Username:   sanitizeUsername(username),
		Email:      gofakeit.Email(),
		Bio:        gofakeit.Sentence(10),
		Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		CoverImage: fmt.Sprintf("https://picsum.photos/seed/cover-%s/1200/400", gofakeit.UUID()),
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post for the given author without persisting it.
// Useful for batching.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		UserID:     author.ID,
		AuthorName: author.Username,
		Text:       gofakeit.Paragraph(1, 3, 8, "\n"),
		CreatedAt:  f.pastTimestamp(),
	}

	// Roughly a third of posts carry an image.
	if f.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a post for the given author.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment by the given user on the given post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    author.ID,
		Username:  author.Username,
		Text:      gofakeit.Sentence(f.rng.Intn(12) + 3),
		CreatedAt: f.timestampAfter(post.CreatedAt),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like by the given user on the given post.
// Returns false when the pair already existed.
func (f *Factory) CreateLike(user *models.User, post *models.Post) (bool, error) {
	res := f.db.Exec(
		"INSERT INTO likes (user_id, post_id, username, created_at) VALUES (?, ?, ?, ?) ON CONFLICT (user_id, post_id) DO NOTHING",
		user.ID, post.ID, user.Username, f.timestampAfter(post.CreatedAt),
	)
	return res.RowsAffected > 0, res.Error
}

// CreateFollow persists a follow edge from follower to followee.
// Returns false when the edge already existed.
func (f *Factory) CreateFollow(follower, followee *models.User) (bool, error) {
	res := f.db.Exec(
		"INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?) ON CONFLICT (follower_id, followee_id) DO NOTHING",
		follower.ID, followee.ID, f.pastTimestamp(),
	)
	return res.RowsAffected > 0, res.Error
}

// CreateNotification persists a notification for the recipient.
func (f *Factory) CreateNotification(recipient, actor *models.User, kind models.NotificationKind, postID *uint, message string) error {
	n := &models.Notification{
		RecipientID: recipient.ID,
		ActorID:     actor.ID,
		Kind:        kind,
		PostID:      postID,
		Message:     message,
		Read:        f.rng.Intn(2) == 0,
		CreatedAt:   f.pastTimestamp(),
	}
	return f.db.Create(n).Error
}

// pastTimestamp returns a time spread over the last MaxDays days so
// seeded feeds look lived-in rather than created in one burst.
func (f *Factory) pastTimestamp() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// timestampAfter returns a time between base and now, so reactions never
// predate the post they react to.
func (f *Factory) timestampAfter(base time.Time) time.Time {
	span := time.Since(base)
	if span <= 0 {
		return time.Now()
	}
	return base.Add(time.Duration(f.rng.Int63n(int64(span))))
}

// sanitizeUsername strips characters the signup validator would reject.
func sanitizeUsername(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "_-")
	if len(out) < 3 {
		out = "user" + fmt.Sprintf("%d", gofakeit.Number(1000, 9999))
	}
	if len(out) > 30 {
		out = out[:30]
	}
	return out
}

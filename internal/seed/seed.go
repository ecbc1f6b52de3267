package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays spreads generated timestamps over this many days back.
	MaxDays int
}

// Seeder populates the database with a connected social mesh: users who
// follow each other, post, like, comment, and accumulate notifications.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes all seeded rows. Order matters: children before
// parents so foreign keys never block the delete.
func (s *Seeder) ClearAll() error {
	tables := []string{"notifications", "likes", "comments", "follows", "posts", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// Run seeds the full social mesh per the options the Seeder was built with.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 50
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 200
	}

	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}

	if err := s.seedFollowMesh(users); err != nil {
		return fmt.Errorf("seeding follows: %w", err)
	}

	posts, err := s.seedPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}

	if err := s.seedReactions(users, posts); err != nil {
		return fmt.Errorf("seeding reactions: %w", err)
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)

	// A fixed first account so developers always have a known login.
	demo, err := s.factory.CreateUser(func(u *models.User) {
		u.Name = "Demo User"
		u.Username = "demo"
		u.Email = "demo@ripple.dev"
		u.Bio = "Just here to try things out."
	})
	if err != nil {
		return nil, err
	}
	users = append(users, demo)

	for i := 1; i < n; i++ {
		u, err := s.factory.CreateUser()
		if err != nil {
			// Generated usernames can rarely collide; skip and move on.
			log.Printf("skipping user %d: %v", i, err)
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// seedFollowMesh gives each user a handful of outgoing follows, with a
// follow notification for each edge.
func (s *Seeder) seedFollowMesh(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		edges := s.factory.rng.Intn(8) + 1
		for j := 0; j < edges; j++ {
			followee := users[s.factory.rng.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			created, err := s.factory.CreateFollow(follower, followee)
			if err != nil {
				return err
			}
			if !created {
				continue
			}
			msg := fmt.Sprintf("%s started following you", follower.Username)
			if err := s.factory.CreateNotification(followee, follower, models.NotificationKindFollow, nil, msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedPosts(users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// seedReactions sprinkles likes and comments over the posts, recording
// a notification for the author of each reacted-to post.
func (s *Seeder) seedReactions(users []*models.User, posts []*models.Post) error {
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, post := range posts {
		author := byID[post.UserID]

		nLikes := s.factory.rng.Intn(10)
		for j := 0; j < nLikes; j++ {
			liker := users[s.factory.rng.Intn(len(users))]
			if liker.ID == post.UserID {
				continue
			}
			created, err := s.factory.CreateLike(liker, post)
			if err != nil {
				return err
			}
			if !created {
				continue
			}
			msg := fmt.Sprintf("%s liked your post", liker.Username)
			if err := s.factory.CreateNotification(author, liker, models.NotificationKindLike, &post.ID, msg); err != nil {
				return err
			}
		}

		nComments := s.factory.rng.Intn(5)
		for j := 0; j < nComments; j++ {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return err
			}
			if commenter.ID != post.UserID {
				msg := fmt.Sprintf("%s commented on your post", commenter.Username)
				if err := s.factory.CreateNotification(author, commenter, models.NotificationKindComment, &post.ID, msg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

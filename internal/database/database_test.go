package database

import (
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(PersistentModels()...))
	return db
}

func TestPersistentModels_Migrate(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"users", "posts", "comments", "likes", "follows", "notifications"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestFollowEdgeUniqueness(t *testing.T) {
	db := openTestDB(t)

	a := models.User{Name: "A", Username: "usera", Email: "a@example.com", Password: "x"}
	b := models.User{Name: "B", Username: "userb", Email: "b@example.com", Password: "x"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	require.NoError(t, db.Create(&models.Follow{FollowerID: a.ID, FolloweeID: b.ID}).Error)
	err := db.Create(&models.Follow{FollowerID: a.ID, FolloweeID: b.ID}).Error
	assert.Error(t, err, "duplicate follow edge must violate the unique index")
}

func TestLikeUniqueness(t *testing.T) {
	db := openTestDB(t)

	u := models.User{Name: "A", Username: "likeuser", Email: "like@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	p := models.Post{UserID: u.ID, AuthorName: u.Name, Text: "hello"}
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, db.Create(&models.Like{UserID: u.ID, PostID: p.ID, Username: u.Username}).Error)
	err := db.Create(&models.Like{UserID: u.ID, PostID: p.ID, Username: u.Username}).Error
	assert.Error(t, err, "duplicate like must violate the unique index")
}

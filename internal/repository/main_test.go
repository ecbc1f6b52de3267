package repository

import (
	"os"
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// openTestDB returns a fresh in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:     author.ID,
		AuthorName: author.Name,
		Text:       text,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

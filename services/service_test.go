package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillhub/quill/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createGroup(t *testing.T, db *gorm.DB, title, slug string) models.Group {
	t.Helper()
	group := models.Group{Title: title, Slug: slug, Description: title + " community"}
	require.NoError(t, db.Create(&group).Error)
	return group
}

func createPost(t *testing.T, db *gorm.DB, author models.User, text string, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{AuthorID: author.ID, Text: text, CreatedAt: createdAt, UpdatedAt: createdAt}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func actorFor(user models.User) models.Actor {
	return models.Actor{ID: user.ID, Username: user.Username}
}

// fixedClock returns a clock frozen at the given instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

var testLogger = zap.NewNop()

package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forkful/backend/internal/models"
)

// newTestDB opens a fresh in-memory database with the schema applied.
// The pool is pinned to a single connection so the memory database is
// not silently duplicated per connection.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Recipe{}))

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// createTestUser registers a user through the real service so the
// password hash and token plumbing are exercised.
func createTestUser(t *testing.T, auth *AuthService, name, email string) *models.User {
	t.Helper()
	user, _, err := auth.Register(name, email, "password123")
	require.NoError(t, err)
	return user
}

package database

import (
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/models"
)

// Migrate brings the schema up to date. The whole model fits in two
// collections, so GORM auto-migration covers it on both postgres and the
// sqlite databases used in tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
	)
}

package testutil

import (
	"testing"

	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns an isolated in-memory database with the full schema
// migrated. Each call gets its own database, so tests never share state.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Board{},
		&models.BoardMember{},
		&models.Deal{},
		&models.Activity{},
		&models.ICMemo{},
		&models.MemoVersion{},
		&models.Comment{},
		&models.Vote{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

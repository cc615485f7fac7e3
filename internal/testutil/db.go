// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"quill/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens an in-memory SQLite database migrated with the given
// models. Connections are capped at one so every query sees the same
// in-memory database.
func OpenTestDB(t *testing.T, migrations ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(migrations...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// OpenIdentityTestDB opens a test database migrated with the identity
// service's models.
func OpenIdentityTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return OpenTestDB(t, &models.User{}, &models.Follow{})
}

// OpenContentTestDB opens a test database migrated with the content
// service's models.
func OpenContentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return OpenTestDB(t, &models.Post{}, &models.Comment{})
}

// Package testdb wires an in-memory sqlite database into the global
// handle so handler and service tests run against a real gorm stack.
package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/recipebox-dev/recipebox/db"
	"github.com/recipebox-dev/recipebox/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open replaces db.DB with a fresh in-memory database for the duration
// of the test. The pool is pinned to one connection because each sqlite
// :memory: connection is its own database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()

	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)

	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	previous := db.DB
	db.DB = gdb

	t.Cleanup(func() {
		db.DB = previous
		sqlDB.Close()
	})

	return gdb
}

package database

import (
	"testing"

	"gorm.io/gorm"
)

// OpenTest returns a migrated in-memory sqlite database closed at the end of the test.
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := Open(Config{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

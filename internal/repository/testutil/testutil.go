// Package testutil provides database helpers for repository and service tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/db"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/snowflake"
)

// NewTestDB opens a migrated SQLite database in a test temp dir.
// The database is closed and removed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if err := snowflake.Init(0); err != nil {
		t.Fatalf("init snowflake: %v", err)
	}

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return database
}

// SeedUser inserts a user and returns its ID.
func SeedUser(t *testing.T, database *sql.DB, user model.User) int64 {
	t.Helper()

	if user.Username == "" {
		user.Username = "testuser"
	}
	if user.Email == "" {
		user.Email = user.Username + "@example.com"
	}
	if user.PasswordHash == "" {
		user.PasswordHash = "$2a$10$fakedhashforrepositorytests0000000000000000000000000"
	}

	created, err := repository.NewUserRepository(database).Create(context.Background(), user)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created.ID
}

// SeedSummary inserts a summary and returns its ID.
func SeedSummary(t *testing.T, database *sql.DB, summary model.Summary) int64 {
	t.Helper()

	created, err := repository.NewSummaryRepository(database).Create(context.Background(), summary)
	if err != nil {
		t.Fatalf("seed summary: %v", err)
	}
	return created.ID
}

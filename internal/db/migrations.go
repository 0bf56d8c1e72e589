package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  member_since TEXT NOT NULL,
  last_seen TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);

CREATE TABLE IF NOT EXISTS summaries (
  id INTEGER PRIMARY KEY,
  user_id INTEGER NOT NULL,
  original_text TEXT NOT NULL,
  summary TEXT NOT NULL,
  is_batch INTEGER NOT NULL DEFAULT 0,
  batch_id TEXT,
  created_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_summaries_user_id ON summaries(user_id);
CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at);
CREATE INDEX IF NOT EXISTS idx_summaries_batch_id ON summaries(batch_id);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add bio column to users if not exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('users') WHERE name = 'bio'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check bio column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE users ADD COLUMN bio TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add bio column: %w", err)
		}
	}

	// Migration 2: Composite index for per-user history ordered by recency
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_summaries_user_created ON summaries(user_id, created_at)`); err != nil {
		return fmt.Errorf("create idx_summaries_user_created: %w", err)
	}

	return nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rituals (
			id TEXT PRIMARY KEY,
			owner_id TEXT,
			tags TEXT,
			effort TEXT NOT NULL,
			frequency TEXT,
			scope TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS ritual_completions (
			id TEXT PRIMARY KEY,
			ritual_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			day TEXT NOT NULL,
			completed_at DATETIME NOT NULL,
			quiet INTEGER DEFAULT 0,
			artifact_id TEXT,
			FOREIGN KEY(ritual_id) REFERENCES rituals(id)
		);`,
		`CREATE TABLE IF NOT EXISTS user_ritual_state (
			user_id TEXT PRIMARY KEY,
			enabled INTEGER DEFAULT 1,
			longest_streak INTEGER DEFAULT 0,
			preferred_tags TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rituals_scope ON rituals(scope);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_user_day ON ritual_completions(user_id, day);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_ritual_completed_at ON ritual_completions(ritual_id, completed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

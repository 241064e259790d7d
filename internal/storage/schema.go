package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL DEFAULT '',
			theme TEXT NOT NULL DEFAULT 'dark',
			avatar_url TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS stats (
			user_id TEXT PRIMARY KEY,
			xp INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			current_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			vitality INTEGER NOT NULL DEFAULT 100,
			mana INTEGER NOT NULL DEFAULT 100,
			last_active TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			xp INTEGER NOT NULL,
			type TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		// Presence of a row is the completion fact; xp/coins are frozen
		// at completion time so deletion and weekly sums never depend on
		// the quest row surviving.
		`CREATE TABLE IF NOT EXISTS completions (
			user_id TEXT NOT NULL,
			quest_id TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			xp_awarded INTEGER NOT NULL,
			coins_awarded INTEGER NOT NULL,
			PRIMARY KEY (user_id, quest_id, completed_at)
		);`,
		`CREATE TABLE IF NOT EXISTS journal (
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			affirmation TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (user_id, date)
		);`,
		`CREATE TABLE IF NOT EXISTS timer_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			quest_id TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			duration_seconds INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS redemptions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			coins_redeemed INTEGER NOT NULL,
			amount INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_user_id ON quests(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_user_date ON completions(user_id, completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_date ON completions(completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_timer_sessions_user ON timer_sessions(user_id, started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_redemptions_user ON redemptions(user_id, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

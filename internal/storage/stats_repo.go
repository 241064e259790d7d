package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) Get(ctx context.Context, userID string) (*Stats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, xp, coins, level, current_streak, best_streak, vitality, mana, last_active
		FROM stats
		WHERE user_id = ?
	`, userID)

	var s Stats
	var lastActive sql.NullString
	err := row.Scan(&s.UserID, &s.XP, &s.Coins, &s.Level, &s.CurrentStreak, &s.BestStreak, &s.Vitality, &s.Mana, &lastActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("stats get: %w", err)
	}
	s.LastActive = lastActive.String
	return &s, nil
}

func (r *StatsRepo) GetOrCreate(ctx context.Context, userID string) (*Stats, error) {
	s, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO stats (user_id) VALUES (?)`, userID); err != nil {
		return nil, fmt.Errorf("stats insert: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *StatsRepo) Update(ctx context.Context, s *Stats) error {
	var lastActive interface{}
	if s.LastActive != "" {
		lastActive = s.LastActive
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE stats
		SET xp = ?, coins = ?, level = ?, current_streak = ?, best_streak = ?,
			vitality = ?, mana = ?, last_active = ?
		WHERE user_id = ?
	`, s.XP, s.Coins, s.Level, s.CurrentStreak, s.BestStreak, s.Vitality, s.Mana, lastActive, s.UserID)
	if err != nil {
		return fmt.Errorf("stats update: %w", err)
	}
	return nil
}

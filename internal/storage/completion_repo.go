package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CompletionRepo struct {
	db *sql.DB
}

func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Insert(ctx context.Context, c Completion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completions (user_id, quest_id, completed_at, xp_awarded, coins_awarded)
		VALUES (?, ?, ?, ?, ?)
	`, c.UserID, c.QuestID, c.CompletedAt, c.XPAwarded, c.CoinsAwarded)
	if err != nil {
		return fmt.Errorf("completion insert: %w", err)
	}
	return nil
}

func (r *CompletionRepo) Get(ctx context.Context, userID, questID, date string) (*Completion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, quest_id, completed_at, xp_awarded, coins_awarded
		FROM completions
		WHERE user_id = ? AND quest_id = ? AND completed_at = ?
	`, userID, questID, date)

	var c Completion
	if err := row.Scan(&c.UserID, &c.QuestID, &c.CompletedAt, &c.XPAwarded, &c.CoinsAwarded); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("completion get: %w", err)
	}
	return &c, nil
}

func (r *CompletionRepo) Delete(ctx context.Context, userID, questID, date string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM completions
		WHERE user_id = ? AND quest_id = ? AND completed_at = ?
	`, userID, questID, date)
	if err != nil {
		return fmt.Errorf("completion delete: %w", err)
	}
	return nil
}

// CountOnDate returns how many quests were completed on the given day.
func (r *CompletionRepo) CountOnDate(ctx context.Context, userID, date string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM completions
		WHERE user_id = ? AND completed_at = ?
	`, userID, date)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}

// ListOnDate returns quest ids completed on the given day, in insertion
// order (rowid keeps set-insertion order stable).
func (r *CompletionRepo) ListOnDate(ctx context.Context, userID, date string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT quest_id
		FROM completions
		WHERE user_id = ? AND completed_at = ?
		ORDER BY rowid ASC
	`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

// ListByUser returns every completion for a user, oldest day first.
func (r *CompletionRepo) ListByUser(ctx context.Context, userID string) ([]Completion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, quest_id, completed_at, xp_awarded, coins_awarded
		FROM completions
		WHERE user_id = ?
		ORDER BY completed_at ASC, rowid ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("completion list by user: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.UserID, &c.QuestID, &c.CompletedAt, &c.XPAwarded, &c.CoinsAwarded); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

// SumForQuest totals the captured XP and coin awards of every
// completion referencing a quest. Used to reverse totals when the
// quest is deleted.
func (r *CompletionRepo) SumForQuest(ctx context.Context, userID, questID string) (xp int, coins int, err error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(xp_awarded), 0), COALESCE(SUM(coins_awarded), 0)
		FROM completions
		WHERE user_id = ? AND quest_id = ?
	`, userID, questID)
	if err := row.Scan(&xp, &coins); err != nil {
		return 0, 0, fmt.Errorf("completion sum: %w", err)
	}
	return xp, coins, nil
}

func (r *CompletionRepo) DeleteByQuest(ctx context.Context, userID, questID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM completions
		WHERE user_id = ? AND quest_id = ?
	`, userID, questID)
	if err != nil {
		return fmt.Errorf("completion delete by quest: %w", err)
	}
	return nil
}

// WeeklyTotals aggregates XP per user over [start, end] (civil dates,
// inclusive) for every user with at least one completion in the window.
func (r *CompletionRepo) WeeklyTotals(ctx context.Context, start, end string) ([]LeaderboardRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.user_id, COALESCE(p.display_name, ''), COALESCE(p.avatar_url, ''), SUM(c.xp_awarded)
		FROM completions c
		LEFT JOIN profiles p ON p.user_id = c.user_id
		WHERE c.completed_at >= ? AND c.completed_at <= ?
		GROUP BY c.user_id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("weekly totals: %w", err)
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var lr LeaderboardRow
		if err := rows.Scan(&lr.UserID, &lr.DisplayName, &lr.AvatarURL, &lr.WeeklyXP); err != nil {
			return nil, fmt.Errorf("weekly scan: %w", err)
		}
		out = append(out, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("weekly rows: %w", err)
	}
	return out, nil
}

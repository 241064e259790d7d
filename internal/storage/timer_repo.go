package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TimerRepo struct {
	db *sql.DB
}

func NewTimerRepo(db *sql.DB) *TimerRepo {
	return &TimerRepo{db: db}
}

func (r *TimerRepo) Insert(ctx context.Context, s TimerSession) error {
	var endedAt interface{}
	if s.EndedAt != nil {
		endedAt = s.EndedAt.UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO timer_sessions (id, user_id, quest_id, started_at, ended_at, duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.UserID, s.QuestID, s.StartedAt.UTC(), endedAt, s.DurationSeconds)
	if err != nil {
		return fmt.Errorf("timer insert: %w", err)
	}
	return nil
}

// Active returns the user's open session (ended_at null), newest first,
// or nil when no session is running.
func (r *TimerRepo) Active(ctx context.Context, userID string) (*TimerSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, quest_id, started_at, ended_at, duration_seconds
		FROM timer_sessions
		WHERE user_id = ? AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`, userID)
	return scanTimerRow(row)
}

// Finish closes a session with its end instant and elapsed seconds.
func (r *TimerRepo) Finish(ctx context.Context, id string, endedAt time.Time, durationSeconds int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE timer_sessions
		SET ended_at = ?, duration_seconds = ?
		WHERE id = ?
	`, endedAt.UTC(), durationSeconds, id)
	if err != nil {
		return fmt.Errorf("timer finish: %w", err)
	}
	return nil
}

func (r *TimerRepo) ListByUser(ctx context.Context, userID string) ([]TimerSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, quest_id, started_at, ended_at, duration_seconds
		FROM timer_sessions
		WHERE user_id = ?
		ORDER BY started_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("timer list: %w", err)
	}
	defer rows.Close()

	var out []TimerSession
	for rows.Next() {
		var s TimerSession
		var endedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.UserID, &s.QuestID, &s.StartedAt, &endedAt, &s.DurationSeconds); err != nil {
			return nil, fmt.Errorf("timer scan: %w", err)
		}
		if endedAt.Valid {
			t := endedAt.Time
			s.EndedAt = &t
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("timer rows: %w", err)
	}
	return out, nil
}

func scanTimerRow(row *sql.Row) (*TimerSession, error) {
	var s TimerSession
	var endedAt sql.NullTime
	if err := row.Scan(&s.ID, &s.UserID, &s.QuestID, &s.StartedAt, &endedAt, &s.DurationSeconds); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("timer get: %w", err)
	}
	if endedAt.Valid {
		t := endedAt.Time
		s.EndedAt = &t
	}
	return &s, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) Upsert(ctx context.Context, e JournalEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO journal (user_id, date, notes, affirmation) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET notes = excluded.notes, affirmation = excluded.affirmation
	`, e.UserID, e.Date, e.Notes, e.Affirmation)
	if err != nil {
		return fmt.Errorf("journal upsert: %w", err)
	}
	return nil
}

func (r *JournalRepo) Get(ctx context.Context, userID, date string) (*JournalEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, date, notes, affirmation
		FROM journal
		WHERE user_id = ? AND date = ?
	`, userID, date)

	var e JournalEntry
	if err := row.Scan(&e.UserID, &e.Date, &e.Notes, &e.Affirmation); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("journal get: %w", err)
	}
	return &e, nil
}

// ListByUser returns every journal entry, oldest first.
func (r *JournalRepo) ListByUser(ctx context.Context, userID string) ([]JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, date, notes, affirmation
		FROM journal
		WHERE user_id = ?
		ORDER BY date ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("journal list: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.UserID, &e.Date, &e.Notes, &e.Affirmation); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal rows: %w", err)
	}
	return out, nil
}

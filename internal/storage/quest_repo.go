package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type QuestRepo struct {
	db *sql.DB
}

func NewQuestRepo(db *sql.DB) *QuestRepo {
	return &QuestRepo{db: db}
}

func (r *QuestRepo) Insert(ctx context.Context, q Quest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (id, user_id, title, category, xp, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.UserID, q.Title, q.Category, q.XP, q.Type, q.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("quest insert: %w", err)
	}
	return nil
}

func (r *QuestRepo) Get(ctx context.Context, userID, id string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, category, xp, type, created_at
		FROM quests
		WHERE user_id = ? AND id = ?
	`, userID, id)

	var q Quest
	var createdAt time.Time
	if err := row.Scan(&q.ID, &q.UserID, &q.Title, &q.Category, &q.XP, &q.Type, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest get: %w", err)
	}
	q.CreatedAt = createdAt
	return &q, nil
}

// ListByUser returns the user's quests in creation order.
func (r *QuestRepo) ListByUser(ctx context.Context, userID string) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, category, xp, type, created_at
		FROM quests
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		var q Quest
		if err := rows.Scan(&q.ID, &q.UserID, &q.Title, &q.Category, &q.XP, &q.Type, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM quests WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("quest delete: %w", err)
	}
	return nil
}

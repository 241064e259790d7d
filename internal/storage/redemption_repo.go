package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type RedemptionRepo struct {
	db *sql.DB
}

func NewRedemptionRepo(db *sql.DB) *RedemptionRepo {
	return &RedemptionRepo{db: db}
}

func (r *RedemptionRepo) Insert(ctx context.Context, red Redemption) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO redemptions (id, user_id, coins_redeemed, amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, red.ID, red.UserID, red.CoinsRedeemed, red.Amount, red.Status, red.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("redemption insert: %w", err)
	}
	return nil
}

// ListByUser returns the redemption ledger, newest first.
func (r *RedemptionRepo) ListByUser(ctx context.Context, userID string) ([]Redemption, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, coins_redeemed, amount, status, created_at
		FROM redemptions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("redemption list: %w", err)
	}
	defer rows.Close()

	var out []Redemption
	for rows.Next() {
		var red Redemption
		if err := rows.Scan(&red.ID, &red.UserID, &red.CoinsRedeemed, &red.Amount, &red.Status, &red.CreatedAt); err != nil {
			return nil, fmt.Errorf("redemption scan: %w", err)
		}
		out = append(out, red)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("redemption rows: %w", err)
	}
	return out, nil
}

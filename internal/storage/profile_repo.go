package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// LocalUserID identifies the single local CLI user. The schema is
// keyed by user so a shared database (and the leaderboard) can hold
// many users.
const LocalUserID = "local"

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, theme, avatar_url
		FROM profiles
		WHERE user_id = ?
	`, userID)

	var p Profile
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.Theme, &p.AvatarURL); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) GetOrCreate(ctx context.Context, userID string) (*Profile, error) {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO profiles (user_id) VALUES (?)`, userID); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET display_name = ?, theme = ?, avatar_url = ?
		WHERE user_id = ?
	`, p.DisplayName, p.Theme, p.AvatarURL, p.UserID)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}

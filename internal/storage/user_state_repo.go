package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// MainUserKey is the single-user default for the local CLI.
const MainUserKey = "main_user"

type UserStateRepo struct {
	db *sql.DB
}

func NewUserStateRepo(db *sql.DB) *UserStateRepo {
	return &UserStateRepo{db: db}
}

func (r *UserStateRepo) Get(ctx context.Context, userID string) (*UserState, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, enabled, longest_streak, preferred_tags
		FROM user_ritual_state
		WHERE user_id = ?
	`, userID)

	var (
		s       UserState
		enabled int
		tagsRaw sql.NullString
	)
	if err := row.Scan(&s.UserID, &enabled, &s.LongestStreak, &tagsRaw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user state get: %w", err)
	}
	s.Enabled = enabled != 0
	tags, err := unmarshalTags(tagsRaw)
	if err != nil {
		return nil, err
	}
	s.PreferredTags = tags
	return &s, nil
}

// GetOrCreate returns the user's state row, creating an enabled default row
// on first use.
func (r *UserStateRepo) GetOrCreate(ctx context.Context, userID string) (*UserState, error) {
	s, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO user_ritual_state (user_id) VALUES (?)`, userID); err != nil {
		return nil, fmt.Errorf("user state insert: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *UserStateRepo) Update(ctx context.Context, s *UserState) error {
	tagsJSON, err := marshalTags(s.PreferredTags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE user_ritual_state
		SET enabled = ?, longest_streak = ?, preferred_tags = ?
		WHERE user_id = ?
	`, boolToInt(s.Enabled), s.LongestStreak, tagsJSON, s.UserID)
	if err != nil {
		return fmt.Errorf("user state update: %w", err)
	}
	return nil
}

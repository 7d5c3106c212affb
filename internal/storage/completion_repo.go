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

func (r *CompletionRepo) Insert(ctx context.Context, in Completion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ritual_completions (id, ritual_id, user_id, day, completed_at, quiet, artifact_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.ID, in.RitualID, in.UserID, in.Day, in.CompletedAt, boolToInt(in.Quiet), in.ArtifactID)
	if err != nil {
		return fmt.Errorf("completion insert: %w", err)
	}
	return nil
}

// ListByUser returns the user's full completion log, newest first.
func (r *CompletionRepo) ListByUser(ctx context.Context, userID string) ([]Completion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ritual_id, user_id, day, completed_at, quiet, artifact_id
		FROM ritual_completions
		WHERE user_id = ?
		ORDER BY completed_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var (
			c        Completion
			quiet    int
			artifact sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.RitualID, &c.UserID, &c.Day, &c.CompletedAt, &quiet, &artifact); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		c.Quiet = quiet != 0
		if artifact.Valid {
			v := artifact.String
			c.ArtifactID = &v
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

// CountByUser returns the user's lifetime completion count.
func (r *CompletionRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ritual_completions WHERE user_id = ?
	`, userID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}

// Last returns the user's most recent completion of a ritual, or nil.
func (r *CompletionRepo) Last(ctx context.Context, userID, ritualID string) (*Completion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, ritual_id, user_id, day, completed_at, quiet, artifact_id
		FROM ritual_completions
		WHERE user_id = ? AND ritual_id = ?
		ORDER BY completed_at DESC
		LIMIT 1
	`, userID, ritualID)

	var (
		c        Completion
		quiet    int
		artifact sql.NullString
	)
	if err := row.Scan(&c.ID, &c.RitualID, &c.UserID, &c.Day, &c.CompletedAt, &quiet, &artifact); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("completion last: %w", err)
	}
	c.Quiet = quiet != 0
	if artifact.Valid {
		v := artifact.String
		c.ArtifactID = &v
	}
	return &c, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

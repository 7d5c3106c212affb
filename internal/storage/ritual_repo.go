package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type RitualRepo struct {
	db *sql.DB
}

func NewRitualRepo(db *sql.DB) *RitualRepo {
	return &RitualRepo{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertRitual(ctx context.Context, e execer, in Ritual) error {
	tagsJSON, err := marshalTags(in.Tags)
	if err != nil {
		return err
	}
	_, err = e.ExecContext(ctx, `
		INSERT INTO rituals (id, owner_id, tags, effort, frequency, scope)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			tags = excluded.tags,
			effort = excluded.effort,
			frequency = excluded.frequency,
			scope = excluded.scope
	`, in.ID, in.OwnerID, tagsJSON, in.Effort, in.Frequency, in.Scope)
	if err != nil {
		return fmt.Errorf("ritual upsert: %w", err)
	}
	return nil
}

func (r *RitualRepo) Upsert(ctx context.Context, in Ritual) error {
	return upsertRitual(ctx, r.db, in)
}

// UpsertTx is the transactional variant used by bulk imports.
func (r *RitualRepo) UpsertTx(ctx context.Context, tx *sql.Tx, in Ritual) error {
	return upsertRitual(ctx, tx, in)
}

func (r *RitualRepo) Get(ctx context.Context, id string) (*Ritual, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, tags, effort, frequency, scope, created_at
		FROM rituals
		WHERE id = ?
	`, id)
	return scanRitual(row)
}

// ListByScope returns all rituals with the given scope, ordered by creation
// time then id so the global rotation sees a stable candidate order.
func (r *RitualRepo) ListByScope(ctx context.Context, scope string) ([]Ritual, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, tags, effort, frequency, scope, created_at
		FROM rituals
		WHERE scope = ?
		ORDER BY created_at ASC, id ASC
	`, scope)
	if err != nil {
		return nil, fmt.Errorf("ritual list by scope: %w", err)
	}
	return collectRituals(rows)
}

// ListForUser returns the user's personalized and custom rituals.
func (r *RitualRepo) ListForUser(ctx context.Context, userID string) ([]Ritual, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, tags, effort, frequency, scope, created_at
		FROM rituals
		WHERE scope != 'global' AND (owner_id IS NULL OR owner_id = ?)
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ritual list for user: %w", err)
	}
	return collectRituals(rows)
}

func collectRituals(rows *sql.Rows) ([]Ritual, error) {
	defer rows.Close()

	var out []Ritual
	for rows.Next() {
		rit, err := scanRitual(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ritual rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRitual(row scanner) (*Ritual, error) {
	var (
		id        string
		owner     sql.NullString
		tagsRaw   sql.NullString
		effort    string
		frequency sql.NullString
		scope     string
		createdAt time.Time
	)
	if err := row.Scan(&id, &owner, &tagsRaw, &effort, &frequency, &scope, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ritual scan: %w", err)
	}

	var ownerID *string
	if owner.Valid {
		v := owner.String
		ownerID = &v
	}
	var freq *string
	if frequency.Valid && frequency.String != "" {
		v := frequency.String
		freq = &v
	}
	tags, err := unmarshalTags(tagsRaw)
	if err != nil {
		return nil, err
	}

	return &Ritual{
		ID:        id,
		OwnerID:   ownerID,
		Tags:      tags,
		Effort:    effort,
		Frequency: freq,
		Scope:     scope,
		CreatedAt: createdAt,
	}, nil
}

func marshalTags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	s := string(data)
	return &s, nil
}

func unmarshalTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return tags, nil
}

package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestRitualUpsertAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewRitualRepo(db)
	ctx := context.Background()

	in := Ritual{
		ID:        "morning-pages",
		OwnerID:   strPtr("main_user"),
		Tags:      []string{"writing", "reflection"},
		Effort:    "medium",
		Frequency: strPtr("weekdays:mon,wed,fri"),
		Scope:     "custom",
	}
	require.NoError(t, repo.Upsert(ctx, in))

	got, err := repo.Get(ctx, "morning-pages")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.Tags, got.Tags)
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, "main_user", *got.OwnerID)
	require.NotNil(t, got.Frequency)
	assert.Equal(t, "weekdays:mon,wed,fri", *got.Frequency)
	assert.False(t, got.CreatedAt.IsZero())

	// Upsert replaces the mutable columns in place.
	in.Effort = "deep"
	in.Tags = []string{"focus"}
	require.NoError(t, repo.Upsert(ctx, in))

	got, err = repo.Get(ctx, "morning-pages")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "deep", got.Effort)
	assert.Equal(t, []string{"focus"}, got.Tags)
}

func TestRitualGetMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewRitualRepo(db)

	got, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRitualListByScope(t *testing.T) {
	db := openTestDB(t)
	repo := NewRitualRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, Ritual{ID: "b-global", Effort: "tiny", Scope: "global"}))
	require.NoError(t, repo.Upsert(ctx, Ritual{ID: "a-global", Effort: "tiny", Scope: "global"}))
	require.NoError(t, repo.Upsert(ctx, Ritual{ID: "mine", OwnerID: strPtr("main_user"), Effort: "tiny", Scope: "custom"}))

	globals, err := repo.ListByScope(ctx, "global")
	require.NoError(t, err)
	require.Len(t, globals, 2)
	for _, g := range globals {
		assert.Equal(t, "global", g.Scope)
	}
}

func TestRitualListForUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewRitualRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, Ritual{ID: "shared", Effort: "tiny", Scope: "global"}))
	require.NoError(t, repo.Upsert(ctx, Ritual{ID: "mine", OwnerID: strPtr("main_user"), Effort: "tiny", Scope: "custom"}))
	require.NoError(t, repo.Upsert(ctx, Ritual{ID: "theirs", OwnerID: strPtr("other_user"), Effort: "tiny", Scope: "custom"}))

	got, err := repo.ListForUser(ctx, "main_user")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].ID)
}

func TestCompletionInsertAndList(t *testing.T) {
	db := openTestDB(t)
	rituals := NewRitualRepo(db)
	completions := NewCompletionRepo(db)
	ctx := context.Background()

	require.NoError(t, rituals.Upsert(ctx, Ritual{ID: "breathing", Effort: "tiny", Scope: "global"}))

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.AddDate(0, 0, i)
		require.NoError(t, completions.Insert(ctx, Completion{
			ID:          at.Format("2006-01-02"),
			RitualID:    "breathing",
			UserID:      MainUserKey,
			Day:         at.Format("2006-01-02"),
			CompletedAt: at,
			Quiet:       i == 1,
			ArtifactID:  nil,
		}))
	}

	got, err := completions.ListByUser(ctx, MainUserKey)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Newest first.
	assert.Equal(t, "2024-06-03", got[0].Day)
	assert.Equal(t, "2024-06-01", got[2].Day)
	assert.True(t, got[1].Quiet)

	n, err := completions.CountByUser(ctx, MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCompletionLast(t *testing.T) {
	db := openTestDB(t)
	rituals := NewRitualRepo(db)
	completions := NewCompletionRepo(db)
	ctx := context.Background()

	require.NoError(t, rituals.Upsert(ctx, Ritual{ID: "breathing", Effort: "tiny", Scope: "global"}))

	last, err := completions.Last(ctx, MainUserKey, "breathing")
	require.NoError(t, err)
	assert.Nil(t, last)

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		at := base.AddDate(0, 0, i)
		require.NoError(t, completions.Insert(ctx, Completion{
			ID: at.Format("2006-01-02"), RitualID: "breathing", UserID: MainUserKey,
			Day: at.Format("2006-01-02"), CompletedAt: at,
		}))
	}

	last, err = completions.Last(ctx, MainUserKey, "breathing")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "2024-06-02", last.Day)
}

func TestUserStateGetOrCreateAndUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserStateRepo(db)
	ctx := context.Background()

	got, err := repo.Get(ctx, MainUserKey)
	require.NoError(t, err)
	assert.Nil(t, got)

	state, err := repo.GetOrCreate(ctx, MainUserKey)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.True(t, state.Enabled)
	assert.Equal(t, 0, state.LongestStreak)

	state.Enabled = false
	state.LongestStreak = 14
	state.PreferredTags = []string{"calm"}
	require.NoError(t, repo.Update(ctx, state))

	state, err = repo.Get(ctx, MainUserKey)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.False(t, state.Enabled)
	assert.Equal(t, 14, state.LongestStreak)
	assert.Equal(t, []string{"calm"}, state.PreferredTags)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	repo := NewRitualRepo(db)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := repo.UpsertTx(ctx, tx, Ritual{ID: "doomed", Effort: "tiny", Scope: "global"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	got, err := repo.Get(ctx, "doomed")
	require.NoError(t, err)
	assert.Nil(t, got)
}

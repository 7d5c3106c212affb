package engine

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ritualloop/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func seedRitual(t *testing.T, svc *Service, id string, scope RitualScope, freq string) {
	t.Helper()
	ctx := context.Background()
	in := AddRitualInput{ID: id, Tags: []string{"test"}, Effort: EffortTiny, Frequency: freq, Scope: scope}
	if scope != ScopeGlobal {
		owner := storage.MainUserKey
		in.OwnerID = &owner
	}
	if _, err := svc.AddRitual(ctx, in); err != nil {
		t.Fatalf("add ritual %s: %v", id, err)
	}
}

func TestLogCompletionAndStats(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seedRitual(t, svc, "breathing", ScopeCustom, "daily")

	days := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	for _, d := range days {
		at, _ := ParseDay(d)
		res, err := svc.LogCompletion(ctx, LogCompletionInput{
			UserID:   storage.MainUserKey,
			RitualID: "breathing",
			At:       at.Add(9 * time.Hour),
			Day:      d,
		})
		if err != nil {
			t.Fatalf("log %s: %v", d, err)
		}
		if res.Day != d {
			t.Fatalf("res.Day=%s, want %s", res.Day, d)
		}
	}

	today := mustDay(t, "2024-06-04")
	stats, err := svc.Stats(ctx, storage.MainUserKey, today)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CurrentStreak != 3 || stats.LongestStreak != 3 || stats.CompletedDays != 3 {
		t.Fatalf("stats = %+v, want streak 3 / longest 3 / days 3", stats)
	}
	if len(stats.TopTags) != 1 || stats.TopTags[0] != "test" {
		t.Fatalf("TopTags=%v, want [test]", stats.TopTags)
	}
}

func TestLogCompletionHintNeverRegresses(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seedRitual(t, svc, "breathing", ScopeCustom, "daily")

	// Pre-set a larger cached longest streak.
	state, err := svc.UserStateRepo().GetOrCreate(ctx, storage.MainUserKey)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	state.LongestStreak = 50
	if err := svc.UserStateRepo().Update(ctx, state); err != nil {
		t.Fatalf("update state: %v", err)
	}

	at := mustDay(t, "2024-06-01").Add(9 * time.Hour)
	res, err := svc.LogCompletion(ctx, LogCompletionInput{
		UserID: storage.MainUserKey, RitualID: "breathing", At: at, Day: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if res.LongestStreak != 50 {
		t.Fatalf("LongestStreak=%d, want cached 50", res.LongestStreak)
	}

	stats, err := svc.Stats(ctx, storage.MainUserKey, mustDay(t, "2024-06-01"))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.LongestStreak != 50 {
		t.Fatalf("stats LongestStreak=%d, want 50", stats.LongestStreak)
	}
}

func TestLogCompletionMilestoneCrossing(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seedRitual(t, svc, "breathing", ScopeCustom, "daily")

	start := mustDay(t, "2024-06-01")
	var lastRes *LogResult
	for i := 0; i < 10; i++ {
		day := start.AddDate(0, 0, i)
		res, err := svc.LogCompletion(ctx, LogCompletionInput{
			UserID:   storage.MainUserKey,
			RitualID: "breathing",
			At:       day.Add(9 * time.Hour),
			Day:      FormatDay(day),
		})
		if err != nil {
			t.Fatalf("log day %d: %v", i+1, err)
		}
		lastRes = res
		if i == 6 { // 7th completion: 7-day streak milestone
			if len(res.Crossed) != 1 || res.Crossed[0].Kind != MilestoneStreak || res.Crossed[0].Threshold != 7 {
				t.Fatalf("day 7 crossings = %+v, want the 7-day streak", res.Crossed)
			}
		}
	}
	// 10th completion: 10-completions milestone.
	if len(lastRes.Crossed) != 1 || lastRes.Crossed[0].Kind != MilestoneCompletions || lastRes.Crossed[0].Threshold != 10 {
		t.Fatalf("day 10 crossings = %+v, want 10 completions", lastRes.Crossed)
	}
}

func TestLogCompletionUnknownRitual(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.LogCompletion(ctx, LogCompletionInput{
		UserID: storage.MainUserKey, RitualID: "ghost", At: time.Now(),
	})
	var unknown UnknownRitualError
	if !errors.As(err, &unknown) {
		t.Fatalf("err=%v, want UnknownRitualError", err)
	}
}

func TestDisabledUserRejected(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seedRitual(t, svc, "breathing", ScopeCustom, "daily")
	if err := svc.SetEnabled(ctx, storage.MainUserKey, false); err != nil {
		t.Fatalf("disable: %v", err)
	}

	_, err := svc.LogCompletion(ctx, LogCompletionInput{
		UserID: storage.MainUserKey, RitualID: "breathing", At: time.Now(),
	})
	var disabled RitualsDisabledError
	if !errors.As(err, &disabled) {
		t.Fatalf("log err=%v, want RitualsDisabledError", err)
	}

	_, err = svc.Today(ctx, storage.MainUserKey, mustDay(t, "2024-06-04"))
	if !errors.As(err, &disabled) {
		t.Fatalf("today err=%v, want RitualsDisabledError", err)
	}
}

func TestTodayDueSet(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seedRitual(t, svc, "gratitude", ScopeGlobal, "daily")
	seedRitual(t, svc, "journal", ScopeCustom, "daily")
	seedRitual(t, svc, "monday-review", ScopeCustom, "weekdays:mon")

	today := mustDay(t, "2024-06-04") // a Tuesday

	res, err := svc.Today(ctx, storage.MainUserKey, today)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if res.GlobalRitual == nil || res.GlobalRitual.ID != "gratitude" {
		t.Fatalf("global = %+v, want gratitude", res.GlobalRitual)
	}
	if len(res.PersonalizedRituals) != 1 || res.PersonalizedRituals[0].ID != "journal" {
		t.Fatalf("personalized = %+v, want only journal", res.PersonalizedRituals)
	}

	// Complete the custom ritual; it stays visible, marked done.
	if _, err := svc.LogCompletion(ctx, LogCompletionInput{
		UserID: storage.MainUserKey, RitualID: "journal",
		At: today.Add(8 * time.Hour), Day: FormatDay(today),
	}); err != nil {
		t.Fatalf("log: %v", err)
	}

	res, err = svc.Today(ctx, storage.MainUserKey, today)
	if err != nil {
		t.Fatalf("today after log: %v", err)
	}
	if len(res.PersonalizedRituals) != 1 || !res.PersonalizedRituals[0].Completed {
		t.Fatalf("personalized after log = %+v, want journal marked completed", res.PersonalizedRituals)
	}
}

func TestImportRituals(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seed := `
rituals:
  - id: gratitude
    tags: [calm, reflection]
    effort: tiny
    scope: global
  - id: deep-work
    tags: [focus]
    effort: deep
    frequency: weekdays:mon,wed,fri
    scope: custom
    owner: main_user
`
	n, err := svc.ImportRituals(ctx, strings.NewReader(seed))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}

	rit, err := svc.RitualRepo().Get(ctx, "deep-work")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rit == nil || rit.Frequency == nil || *rit.Frequency != "weekdays:mon,wed,fri" {
		t.Fatalf("ritual = %+v, want stored weekday rule", rit)
	}
}

func TestImportRejectsInvalidEntry(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seed := `
rituals:
  - id: broken
    effort: colossal
    scope: global
`
	if _, err := svc.ImportRituals(ctx, strings.NewReader(seed)); err == nil {
		t.Fatal("expected error for invalid effort")
	}
}

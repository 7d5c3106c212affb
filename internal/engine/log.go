package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ritualloop/internal/storage"
)

type LogCompletionInput struct {
	UserID     string
	RitualID   string
	At         time.Time // precise completion instant
	Day        string    // caller-resolved calendar day; derived from At if empty
	Quiet      bool
	ArtifactID *string
}

type LogResult struct {
	CompletionID  string
	Day           string
	CurrentStreak int
	LongestStreak int
	Total         int
	Crossed       []Milestone // milestones newly achieved by this completion
}

// LogCompletion appends one completion record, recomputes the streak state,
// updates the user's longest-streak hint (never downward) and reports any
// milestones this completion crossed.
func (s *Service) LogCompletion(ctx context.Context, in LogCompletionInput) (*LogResult, error) {
	state, err := s.userState(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !state.Enabled {
		return nil, RitualsDisabledError{UserID: in.UserID}
	}

	rit, err := s.rituals.Get(ctx, in.RitualID)
	if err != nil {
		return nil, err
	}
	if rit == nil {
		return nil, UnknownRitualError{ID: in.RitualID}
	}

	day := in.Day
	if day == "" {
		day = FormatDay(in.At)
	}
	today, err := ParseDay(day)
	if err != nil {
		return nil, err
	}

	before, err := s.completionLog(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	beforeMilestones := Milestones(CurrentStreak(before, today), len(before))

	completionID := uuid.NewString()
	if err := s.completions.Insert(ctx, storage.Completion{
		ID:          completionID,
		RitualID:    in.RitualID,
		UserID:      in.UserID,
		Day:         day,
		CompletedAt: in.At,
		Quiet:       in.Quiet,
		ArtifactID:  in.ArtifactID,
	}); err != nil {
		return nil, err
	}

	after := append([]CompletionRecord{{
		RitualID:    in.RitualID,
		UserID:      in.UserID,
		Day:         day,
		CompletedAt: in.At,
		Quiet:       in.Quiet,
	}}, before...)

	current := CurrentStreak(after, today)
	longest := LongestStreak(after)
	if current > longest {
		longest = current
	}
	if longest > state.LongestStreak {
		state.LongestStreak = longest
		if err := s.states.Update(ctx, state); err != nil {
			return nil, err
		}
	} else {
		longest = state.LongestStreak
	}

	afterMilestones := Milestones(current, len(after))

	return &LogResult{
		CompletionID:  completionID,
		Day:           day,
		CurrentStreak: current,
		LongestStreak: longest,
		Total:         len(after),
		Crossed:       NewlyCrossed(beforeMilestones, afterMilestones),
	}, nil
}

package engine

import (
	"context"
	"database/sql"
	"time"

	"ritualloop/internal/storage"
)

// Service composes the pure calculators with the definition, completion and
// user-state stores. All date-sensitive operations take today from the
// caller; the service never reads a clock.
type Service struct {
	db          *sql.DB
	rituals     *storage.RitualRepo
	completions *storage.CompletionRepo
	states      *storage.UserStateRepo
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:          db,
		rituals:     storage.NewRitualRepo(db),
		completions: storage.NewCompletionRepo(db),
		states:      storage.NewUserStateRepo(db),
	}
}

func (s *Service) RitualRepo() *storage.RitualRepo         { return s.rituals }
func (s *Service) CompletionRepo() *storage.CompletionRepo { return s.completions }
func (s *Service) UserStateRepo() *storage.UserStateRepo   { return s.states }

// Today materializes the stores and selects the user's due set.
func (s *Service) Today(ctx context.Context, userID string, today time.Time) (*TodayRituals, error) {
	state, err := s.userState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.Enabled {
		return nil, RitualsDisabledError{UserID: userID}
	}

	globalRows, err := s.rituals.ListByScope(ctx, string(ScopeGlobal))
	if err != nil {
		return nil, err
	}
	customRows, err := s.rituals.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	log, err := s.completionLog(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := SelectDue(definitionsFromRows(globalRows), definitionsFromRows(customRows), log, today)
	return &res, nil
}

// Stats computes the full engagement report for a user.
func (s *Service) Stats(ctx context.Context, userID string, today time.Time) (*RitualStats, error) {
	state, err := s.userState(ctx, userID)
	if err != nil {
		return nil, err
	}

	log, err := s.completionLog(ctx, userID)
	if err != nil {
		return nil, err
	}

	globalRows, err := s.rituals.ListByScope(ctx, string(ScopeGlobal))
	if err != nil {
		return nil, err
	}
	customRows, err := s.rituals.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	defs := append(definitionsFromRows(globalRows), definitionsFromRows(customRows)...)

	stats := ComputeStats(defs, log, state.LongestStreak, today)
	return &stats, nil
}

// SetEnabled flips the rituals-enabled flag for a user.
func (s *Service) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	state, err := s.userState(ctx, userID)
	if err != nil {
		return err
	}
	state.Enabled = enabled
	return s.states.Update(ctx, state)
}

func (s *Service) userState(ctx context.Context, userID string) (*storage.UserState, error) {
	return s.states.GetOrCreate(ctx, userID)
}

func (s *Service) completionLog(ctx context.Context, userID string) ([]CompletionRecord, error) {
	rows, err := s.completions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	log := make([]CompletionRecord, 0, len(rows))
	for _, r := range rows {
		log = append(log, CompletionRecord{
			RitualID:    r.RitualID,
			UserID:      r.UserID,
			Day:         r.Day,
			CompletedAt: r.CompletedAt,
			Quiet:       r.Quiet,
			ArtifactID:  r.ArtifactID,
		})
	}
	return log, nil
}

// definitionFromRow maps a stored ritual to the engine's definition type.
// A malformed frequency string degrades to daily cadence rather than
// erroring.
func definitionFromRow(r storage.Ritual) RitualDefinition {
	def := RitualDefinition{
		ID:     r.ID,
		Tags:   r.Tags,
		Effort: EffortLevel(r.Effort),
		Scope:  RitualScope(r.Scope),
	}
	if !def.Effort.IsValid() {
		def.Effort = DefaultEffort
	}
	if r.Frequency != nil {
		if rule, err := ParseFrequencyRule(*r.Frequency); err == nil {
			def.Frequency = rule
		}
	}
	return def
}

func definitionsFromRows(rows []storage.Ritual) []RitualDefinition {
	defs := make([]RitualDefinition, 0, len(rows))
	for _, r := range rows {
		defs = append(defs, definitionFromRow(r))
	}
	return defs
}

package engine

import "time"

// DueRitual is a ritual surfaced for today, annotated with whether it has
// already been completed today. "Due but already done today" is a valid,
// displayed state, not a contradiction.
type DueRitual struct {
	RitualDefinition
	Completed bool
}

// TodayRituals is the due set for one user on one calendar day.
type TodayRituals struct {
	GlobalRitual        *DueRitual
	PersonalizedRituals []DueRitual
	Date                string
}

// GlobalIndex is the deterministic rotation for the shared global slot:
// a pure function of day-of-year and candidate count, so every user sees
// the same global ritual on the same day without any stored state.
func GlobalIndex(today time.Time, candidates int) int {
	if candidates <= 0 {
		return -1
	}
	return today.YearDay() % candidates
}

// lastCompletionIndex retains, per ritual, the latest completion instant.
// Single pass over the full log.
func lastCompletionIndex(log []CompletionRecord) map[string]time.Time {
	idx := make(map[string]time.Time, len(log))
	for _, c := range log {
		if prev, ok := idx[c.RitualID]; !ok || c.CompletedAt.After(prev) {
			idx[c.RitualID] = c.CompletedAt
		}
	}
	return idx
}

// completedTodaySet collects ritual IDs with a completion dated today.
func completedTodaySet(log []CompletionRecord, today string) map[string]bool {
	done := map[string]bool{}
	for _, c := range log {
		if recordDay(c) == today {
			done[c.RitualID] = true
		}
	}
	return done
}

// SelectDue composes the due set for today from global candidates and the
// user's personalized/custom rituals. The global slot rotates by day of
// year; the rotated identifier is removed from the personalized list so no
// ritual surfaces twice. Rituals not due are dropped silently, except that
// a completion dated today keeps its ritual in the set.
func SelectDue(globals, customs []RitualDefinition, log []CompletionRecord, today time.Time) TodayRituals {
	todayStr := FormatDay(today)
	lastByRitual := lastCompletionIndex(log)
	doneToday := completedTodaySet(log, todayStr)

	out := TodayRituals{Date: todayStr}

	surfaces := func(def RitualDefinition) bool {
		var last *time.Time
		if t, ok := lastByRitual[def.ID]; ok {
			last = &t
		}
		return IsDue(def.Frequency, last, today) || doneToday[def.ID]
	}

	globalID := ""
	if idx := GlobalIndex(today, len(globals)); idx >= 0 {
		pick := globals[idx]
		globalID = pick.ID
		if surfaces(pick) {
			out.GlobalRitual = &DueRitual{RitualDefinition: pick, Completed: doneToday[pick.ID]}
		}
	}

	seen := map[string]bool{}
	for _, def := range customs {
		if def.ID == globalID || seen[def.ID] {
			continue
		}
		seen[def.ID] = true
		if !surfaces(def) {
			continue
		}
		out.PersonalizedRituals = append(out.PersonalizedRituals, DueRitual{
			RitualDefinition: def,
			Completed:        doneToday[def.ID],
		})
	}

	return out
}

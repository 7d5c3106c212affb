package engine

import "time"

type EffortLevel string

const (
	EffortTiny   EffortLevel = "tiny"
	EffortMedium EffortLevel = "medium"
	EffortDeep   EffortLevel = "deep"
)

func (e EffortLevel) IsValid() bool {
	switch e {
	case EffortTiny, EffortMedium, EffortDeep:
		return true
	default:
		return false
	}
}

// DefaultEffort is used when user input is missing/invalid.
const DefaultEffort EffortLevel = EffortMedium

// RitualScope says who a ritual definition belongs to. Global rituals are
// shared by all users and rotated by day of year; personalized rituals are
// system-suggested; custom rituals are user-authored.
type RitualScope string

const (
	ScopeGlobal       RitualScope = "global"
	ScopePersonalized RitualScope = "personalized"
	ScopeCustom       RitualScope = "custom"
)

func (s RitualScope) IsValid() bool {
	switch s {
	case ScopeGlobal, ScopePersonalized, ScopeCustom:
		return true
	default:
		return false
	}
}

// RitualDefinition is an immutable ritual as materialized by the definition
// store. The engine never creates or mutates these.
type RitualDefinition struct {
	ID        string
	Tags      []string
	Effort    EffortLevel
	Frequency *FrequencyRule // nil means daily
	Scope     RitualScope
}

// CompletionRecord is one append-only log entry: the user performed the
// ritual on the given calendar day. Day is caller-resolved to the user's
// locale; CompletedAt is the precise instant.
type CompletionRecord struct {
	RitualID    string
	UserID      string
	Day         string // YYYY-MM-DD
	CompletedAt time.Time
	Quiet       bool // completed quietly, not shared
	ArtifactID  *string
}

// UserRitualState is the per-user state the engine consumes read-only.
// LongestStreak is a cached hint, not authoritative: stats always take the
// max of the hint and the freshly derived value.
type UserRitualState struct {
	UserID        string
	Enabled       bool
	LongestStreak int
	PreferredTags []string
}

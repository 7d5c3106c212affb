package storage

import "time"

type Ritual struct {
	ID        string
	OwnerID   *string // nil for global rituals
	Tags      []string
	Effort    string
	Frequency *string // compact rule string, nil = daily
	Scope     string
	CreatedAt time.Time
}

type Completion struct {
	ID          string
	RitualID    string
	UserID      string
	Day         string // YYYY-MM-DD
	CompletedAt time.Time
	Quiet       bool
	ArtifactID  *string
}

type UserState struct {
	UserID        string
	Enabled       bool
	LongestStreak int
	PreferredTags []string
}

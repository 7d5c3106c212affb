package engine

import "fmt"

type MilestoneKind string

const (
	MilestoneStreak      MilestoneKind = "streak"
	MilestoneCompletions MilestoneKind = "completions"
)

// Milestone is a fixed threshold with its achieved state. Achievement is
// boolean-only: when a threshold was first crossed is not derivable from a
// flat completion count, so timestamp tracking is left to callers that
// persist first-crossing history.
type Milestone struct {
	Kind      MilestoneKind
	Threshold int
	Achieved  bool
}

var (
	streakThresholds     = []int{7, 14, 30, 60, 100}
	completionThresholds = []int{10, 25, 50, 100, 250, 500}
)

// Milestones reports the achieved state of every fixed threshold for the
// given streak length and lifetime completion count.
func Milestones(streak, completions int) []Milestone {
	out := make([]Milestone, 0, len(streakThresholds)+len(completionThresholds))
	for _, t := range streakThresholds {
		out = append(out, Milestone{Kind: MilestoneStreak, Threshold: t, Achieved: streak >= t})
	}
	for _, t := range completionThresholds {
		out = append(out, Milestone{Kind: MilestoneCompletions, Threshold: t, Achieved: completions >= t})
	}
	return out
}

// NewlyCrossed returns the milestones achieved in after but not in before.
// Both slices must come from Milestones (same order).
func NewlyCrossed(before, after []Milestone) []Milestone {
	var crossed []Milestone
	for i := range after {
		if after[i].Achieved && i < len(before) && !before[i].Achieved {
			crossed = append(crossed, after[i])
		}
	}
	return crossed
}

// Label renders a milestone for celebratory display.
func (m Milestone) Label() string {
	switch m.Kind {
	case MilestoneStreak:
		return fmt.Sprintf("%d-day streak", m.Threshold)
	default:
		return fmt.Sprintf("%d completions", m.Threshold)
	}
}

package engine

import (
	"sort"
	"time"
)

// DayLayout is the calendar-day string format used across the engine.
const DayLayout = "2006-01-02"

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// recordDay returns a completion's calendar day, falling back to the
// completion instant only when the day string is missing.
func recordDay(c CompletionRecord) string {
	if c.Day != "" {
		return c.Day
	}
	return FormatDay(c.CompletedAt)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameCalendarMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the number of whole calendar days from a to b.
// Negative when b is before a.
func daysBetween(a, b time.Time) int {
	return int(midnight(b).Sub(midnight(a)).Hours() / 24)
}

// uniqueDaysDesc reduces a completion log to its distinct calendar-day
// strings, newest first. YYYY-MM-DD sorts correctly as text.
func uniqueDaysDesc(log []CompletionRecord) []string {
	seen := make(map[string]bool, len(log))
	var days []string
	for _, c := range log {
		d := recordDay(c)
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}

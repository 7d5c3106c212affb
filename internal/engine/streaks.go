package engine

import "time"

// CurrentStreak returns the length of the run of consecutive completed days
// ending at today. A streak is not considered broken until a full day has
// elapsed with no completion: if the newest completed day is yesterday the
// streak still counts (grace period), but two days of silence return 0.
func CurrentStreak(log []CompletionRecord, today time.Time) int {
	days := uniqueDaysDesc(log)
	if len(days) == 0 {
		return 0
	}

	var expect time.Time
	switch days[0] {
	case FormatDay(today):
		expect = today.AddDate(0, 0, -1)
	case FormatDay(today.AddDate(0, 0, -1)):
		expect = today.AddDate(0, 0, -2)
	default:
		return 0
	}

	streak := 1
	for _, d := range days[1:] {
		if d != FormatDay(expect) {
			break
		}
		streak++
		expect = expect.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days
// anywhere in the log. A single completed day counts as a streak of 1.
func LongestStreak(log []CompletionRecord) int {
	days := uniqueDaysDesc(log)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	prev, err := ParseDay(days[0])
	if err != nil {
		return 0
	}
	for _, d := range days[1:] {
		cur, err := ParseDay(d)
		if err != nil {
			continue
		}
		if daysBetween(cur, prev) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = cur
	}
	return longest
}

// StreakRun is one historical run of consecutive completed days.
type StreakRun struct {
	StartDate string
	EndDate   string
	Length    int
}

// maxRecentStreaks caps the history report.
const maxRecentStreaks = 5

// RecentStreaks returns the most recent runs, newest first, capped at 5.
// Lone isolated days are not reported here (a "streak" for this report is
// length >= 2), even though they count as length 1 elsewhere.
func RecentStreaks(log []CompletionRecord) []StreakRun {
	days := uniqueDaysDesc(log)
	if len(days) == 0 {
		return nil
	}

	var runs []StreakRun
	end := days[0]
	length := 1
	prev, err := ParseDay(days[0])
	if err != nil {
		return nil
	}

	flush := func(start string) {
		if length >= 2 && len(runs) < maxRecentStreaks {
			runs = append(runs, StreakRun{StartDate: start, EndDate: end, Length: length})
		}
	}

	for _, d := range days[1:] {
		cur, err := ParseDay(d)
		if err != nil {
			continue
		}
		if daysBetween(cur, prev) == 1 {
			length++
		} else {
			flush(FormatDay(prev))
			end = d
			length = 1
		}
		prev = cur
	}
	flush(FormatDay(prev))
	return runs
}

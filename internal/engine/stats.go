package engine

import (
	"sort"
	"time"
)

// RitualStats is the aggregated engagement report for one user. The report
// is a pure function of the completion log, the ritual definitions, the
// cached longest-streak hint and today, so identical inputs yield identical
// reports.
type RitualStats struct {
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
	CompletedLast7   int
	CompletedLast30  int
	CompletedDays    int
	AvgPerActiveDay  float64
	CompletionRate   float64 // distinct days / days since first completion, %
	Trend            TrendDirection
	BestDay          string // weekday name, empty when no completions
	TopTags          []string
	SharedCount      int
	QuietCount       int
	RecentStreaks    []StreakRun
	Milestones       []Milestone
}

const topTagCount = 3

// ComputeStats combines the streak, trend, best-day and milestone
// calculators into one report. cachedLongest is the stored hint from
// UserRitualState; the reported longest streak never regresses below it.
func ComputeStats(rituals []RitualDefinition, log []CompletionRecord, cachedLongest int, today time.Time) RitualStats {
	current := CurrentStreak(log, today)
	longest := LongestStreak(log)
	if current > longest {
		longest = current
	}
	if cachedLongest > longest {
		longest = cachedLongest
	}

	days := uniqueDaysDesc(log)

	stats := RitualStats{
		CurrentStreak:    current,
		LongestStreak:    longest,
		TotalCompletions: len(log),
		CompletedDays:    len(days),
		Trend:            Trend(log, today),
		TopTags:          topTags(rituals, log),
		RecentStreaks:    RecentStreaks(log),
		Milestones:       Milestones(current, len(log)),
	}

	sevenAgo := FormatDay(today.AddDate(0, 0, -7))
	thirtyAgo := FormatDay(today.AddDate(0, 0, -30))
	for _, c := range log {
		d := recordDay(c)
		if d >= sevenAgo {
			stats.CompletedLast7++
		}
		if d >= thirtyAgo {
			stats.CompletedLast30++
		}
		if c.Quiet {
			stats.QuietCount++
		} else {
			stats.SharedCount++
		}
	}

	if wd, ok := BestDay(log); ok {
		stats.BestDay = wd.String()
	}

	if len(days) > 0 {
		stats.AvgPerActiveDay = float64(len(log)) / float64(len(days))

		first, err := ParseDay(days[len(days)-1])
		if err == nil {
			span := daysBetween(first, today) + 1 // inclusive
			if span > 0 {
				stats.CompletionRate = float64(len(days)) / float64(span) * 100
			}
		}
	}

	return stats
}

// topTags returns the three most-completed category tags. Ties break by
// first-encountered order, kept stable through the sort.
func topTags(rituals []RitualDefinition, log []CompletionRecord) []string {
	tagsByRitual := make(map[string][]string, len(rituals))
	for _, r := range rituals {
		tagsByRitual[r.ID] = r.Tags
	}

	counts := map[string]int{}
	var order []string
	for _, c := range log {
		for _, tag := range tagsByRitual[c.RitualID] {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topTagCount {
		order = order[:topTagCount]
	}
	return order
}

package engine

import "time"

// TrendDirection classifies the 7-day rolling engagement comparison.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// trendMinRecords is the minimum log size before a trend is reported at all;
// below it the classification is always stable.
const trendMinRecords = 7

// trendDeadband is the fractional threshold either side of "no change";
// swings within ±10% classify as stable.
const trendDeadband = 0.10

// Trend compares completions in [today-7, today) against [today-14, today-7)
// and classifies the direction of engagement.
func Trend(log []CompletionRecord, today time.Time) TrendDirection {
	if len(log) < trendMinRecords {
		return TrendStable
	}

	weekAgo := FormatDay(today.AddDate(0, 0, -7))
	twoWeeksAgo := FormatDay(today.AddDate(0, 0, -14))
	todayStr := FormatDay(today)

	lastWeek, prevWeek := 0, 0
	for _, c := range log {
		d := recordDay(c)
		switch {
		case d >= weekAgo && d < todayStr:
			lastWeek++
		case d >= twoWeeksAgo && d < weekAgo:
			prevWeek++
		}
	}

	last := float64(lastWeek)
	prev := float64(prevWeek)
	switch {
	case last > prev*(1+trendDeadband):
		return TrendIncreasing
	case last < prev*(1-trendDeadband):
		return TrendDecreasing
	default:
		return TrendStable
	}
}

package engine

import "time"

// BestDay returns the weekday with the most completions. ok is false when
// the log is empty. Ties break on enumeration order Sunday through Saturday:
// the first maximal weekday wins.
func BestDay(log []CompletionRecord) (best time.Weekday, ok bool) {
	var tally [7]int
	for _, c := range log {
		day, err := ParseDay(recordDay(c))
		if err != nil {
			continue
		}
		tally[day.Weekday()]++
	}

	max := 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if tally[wd] > max {
			max = tally[wd]
			best = wd
		}
	}
	if max == 0 {
		return 0, false
	}
	return best, true
}

package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type FrequencyKind string

const (
	FrequencyDaily    FrequencyKind = "daily"
	FrequencyEvery    FrequencyKind = "every"
	FrequencyWeekdays FrequencyKind = "weekdays"
	FrequencyMonthDay FrequencyKind = "monthday"
)

// FrequencyRule is a recurrence descriptor. The zero-value / nil rule means
// daily. A rule that never matches any day (e.g. monthday:31 during a 30-day
// month) is legal and simply never surfaces as due.
type FrequencyRule struct {
	Kind     FrequencyKind
	Every    int            // every N days (Kind == FrequencyEvery)
	Weekdays []time.Weekday // Kind == FrequencyWeekdays
	MonthDay int            // Kind == FrequencyMonthDay
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseFrequencyRule parses the compact rule strings stored with a ritual:
//
//	daily | every:<n> | weekdays:mon,wed,fri | monthday:<n>
//
// An empty string means daily and parses to nil.
func ParseFrequencyRule(input string) (*FrequencyRule, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" || s == string(FrequencyDaily) {
		return nil, nil
	}

	kind, arg, _ := strings.Cut(s, ":")
	switch FrequencyKind(kind) {
	case FrequencyEvery:
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid frequency rule: %q", input)
		}
		return &FrequencyRule{Kind: FrequencyEvery, Every: n}, nil
	case FrequencyWeekdays:
		var days []time.Weekday
		seen := map[time.Weekday]bool{}
		for _, part := range strings.Split(arg, ",") {
			wd, ok := weekdayNames[strings.TrimSpace(part)]
			if !ok {
				return nil, fmt.Errorf("invalid frequency rule: %q", input)
			}
			if !seen[wd] {
				seen[wd] = true
				days = append(days, wd)
			}
		}
		if len(days) == 0 {
			return nil, fmt.Errorf("invalid frequency rule: %q", input)
		}
		return &FrequencyRule{Kind: FrequencyWeekdays, Weekdays: days}, nil
	case FrequencyMonthDay:
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("invalid frequency rule: %q", input)
		}
		// Out-of-range month days are allowed: they just never match.
		return &FrequencyRule{Kind: FrequencyMonthDay, MonthDay: n}, nil
	default:
		return nil, fmt.Errorf("invalid frequency rule: %q", input)
	}
}

// String renders the rule back to its compact stored form.
func (r *FrequencyRule) String() string {
	if r == nil {
		return string(FrequencyDaily)
	}
	switch r.Kind {
	case FrequencyEvery:
		return fmt.Sprintf("every:%d", r.Every)
	case FrequencyWeekdays:
		names := make([]string, 0, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			names = append(names, strings.ToLower(wd.String()[:3]))
		}
		return "weekdays:" + strings.Join(names, ",")
	case FrequencyMonthDay:
		return fmt.Sprintf("monthday:%d", r.MonthDay)
	default:
		return string(FrequencyDaily)
	}
}

// IsDue reports whether a ritual with the given rule recurs on today, taking
// the last completion into account at the rule's period granularity. A nil
// rule means daily. A ritual with no completions is due on its first
// eligible recurrence day.
func IsDue(rule *FrequencyRule, last *time.Time, today time.Time) bool {
	if rule == nil || rule.Kind == FrequencyDaily {
		return last == nil || !sameCalendarDay(*last, today)
	}

	switch rule.Kind {
	case FrequencyEvery:
		if rule.Every < 1 {
			return false
		}
		return last == nil || daysBetween(*last, today) >= rule.Every
	case FrequencyWeekdays:
		match := false
		for _, wd := range rule.Weekdays {
			if today.Weekday() == wd {
				match = true
				break
			}
		}
		if !match {
			return false
		}
		return last == nil || !sameCalendarDay(*last, today)
	case FrequencyMonthDay:
		if today.Day() != rule.MonthDay {
			return false
		}
		return last == nil || !sameCalendarMonth(*last, today)
	default:
		return false
	}
}

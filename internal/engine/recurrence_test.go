package engine

import (
	"testing"
	"time"
)

func TestParseFrequencyRule(t *testing.T) {
	cases := []struct {
		in      string
		wantNil bool
		wantErr bool
	}{
		{"", true, false},
		{"daily", true, false},
		{"  Daily ", true, false},
		{"every:3", false, false},
		{"weekdays:mon,wed,fri", false, false},
		{"monthday:15", false, false},
		{"every:0", false, true},
		{"every:x", false, true},
		{"weekdays:", false, true},
		{"weekdays:funday", false, true},
		{"fortnightly", false, true},
	}
	for _, tc := range cases {
		rule, err := ParseFrequencyRule(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseFrequencyRule(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFrequencyRule(%q): %v", tc.in, err)
		}
		if (rule == nil) != tc.wantNil {
			t.Fatalf("ParseFrequencyRule(%q) nil=%v, want %v", tc.in, rule == nil, tc.wantNil)
		}
	}
}

func TestFrequencyRuleRoundTrip(t *testing.T) {
	for _, s := range []string{"every:3", "weekdays:mon,wed,fri", "monthday:15"} {
		rule, err := ParseFrequencyRule(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got := rule.String(); got != s {
			t.Fatalf("String()=%q, want %q", got, s)
		}
	}
}

func TestIsDueDaily(t *testing.T) {
	today := mustDay(t, "2024-06-04")
	yesterday := mustDay(t, "2024-06-03")

	if !IsDue(nil, nil, today) {
		t.Fatal("daily with no completions should be due")
	}
	if !IsDue(nil, &yesterday, today) {
		t.Fatal("daily completed yesterday should be due")
	}
	sameDay := today.Add(8 * time.Hour)
	if IsDue(nil, &sameDay, today) {
		t.Fatal("daily completed today should not be due")
	}
}

func TestIsDueEveryN(t *testing.T) {
	rule := &FrequencyRule{Kind: FrequencyEvery, Every: 3}
	today := mustDay(t, "2024-06-10")

	if !IsDue(rule, nil, today) {
		t.Fatal("never completed: should be due")
	}
	recent := mustDay(t, "2024-06-08") // 2 days ago
	if IsDue(rule, &recent, today) {
		t.Fatal("completed 2 days ago: not yet due")
	}
	old := mustDay(t, "2024-06-07") // 3 days ago
	if !IsDue(rule, &old, today) {
		t.Fatal("completed 3 days ago: due again")
	}
}

func TestIsDueWeekdays(t *testing.T) {
	rule := &FrequencyRule{Kind: FrequencyWeekdays, Weekdays: []time.Weekday{time.Monday, time.Wednesday}}

	monday := mustDay(t, "2024-06-03")
	tuesday := mustDay(t, "2024-06-04")

	if !IsDue(rule, nil, monday) {
		t.Fatal("Monday should match")
	}
	if IsDue(rule, nil, tuesday) {
		t.Fatal("Tuesday should not match")
	}
	doneMonday := monday.Add(7 * time.Hour)
	if IsDue(rule, &doneMonday, monday) {
		t.Fatal("already completed this Monday: not due")
	}
	lastWeek := mustDay(t, "2024-05-27")
	if !IsDue(rule, &lastWeek, monday) {
		t.Fatal("completed last Monday: due this Monday")
	}
}

func TestIsDueMonthDay(t *testing.T) {
	rule := &FrequencyRule{Kind: FrequencyMonthDay, MonthDay: 15}

	fifteenth := mustDay(t, "2024-06-15")
	tenth := mustDay(t, "2024-06-10")

	if !IsDue(rule, nil, fifteenth) {
		t.Fatal("the 15th should match")
	}
	if IsDue(rule, nil, tenth) {
		t.Fatal("the 10th should not match")
	}
	earlierThisMonth := mustDay(t, "2024-06-01")
	if IsDue(rule, &earlierThisMonth, fifteenth) {
		t.Fatal("already completed this month: not due")
	}
	lastMonth := mustDay(t, "2024-05-15")
	if !IsDue(rule, &lastMonth, fifteenth) {
		t.Fatal("completed last month: due again")
	}
}

func TestIsDueNeverMatchingRuleIsLegal(t *testing.T) {
	// monthday:31 simply never fires in June; it is not an error.
	rule := &FrequencyRule{Kind: FrequencyMonthDay, MonthDay: 31}
	for d := 1; d <= 30; d++ {
		day := time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
		if IsDue(rule, nil, day) {
			t.Fatalf("monthday:31 fired on 2024-06-%02d", d)
		}
	}
}

package domain

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestWeekNumberAt(t *testing.T) {
	epoch := mustDate(t, "2026-01-03")

	cases := []struct {
		name string
		at   string
		want int
	}{
		{"epoch day is week 1", "2026-01-03", 1},
		{"sixth day still week 1", "2026-01-09", 1},
		{"seventh day rolls to week 2", "2026-01-10", 2},
		{"before epoch clamps to 1", "2025-06-01", 1},
		{"far future clamps to last week", "2027-06-01", TotalWeeks},
		{"last scheduled week", "2026-11-28", TotalWeeks},
	}

	for _, tc := range cases {
		if got := WeekNumberAt(epoch, mustDate(t, tc.at)); got != tc.want {
			t.Errorf("%s: got week %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestWeekNumberAtMonotonic(t *testing.T) {
	epoch := mustDate(t, "2026-01-03")

	prev := 0
	for day := -10; day <= 400; day++ {
		got := WeekNumberAt(epoch, epoch.AddDate(0, 0, day))
		if got < prev {
			t.Fatalf("week number decreased at day %d: %d -> %d", day, prev, got)
		}
		if got < 1 || got > TotalWeeks {
			t.Fatalf("week number out of range at day %d: %d", day, got)
		}
		prev = got
	}
}

func TestWeekStartDate(t *testing.T) {
	epoch := mustDate(t, "2026-01-03")

	if got := WeekStartDate(epoch, 1); !got.Equal(epoch) {
		t.Errorf("week 1 start = %s, want epoch", got.Format("2006-01-02"))
	}
	if got := WeekStartDate(epoch, 2); got.Format("2006-01-02") != "2026-01-10" {
		t.Errorf("week 2 start = %s, want 2026-01-10", got.Format("2006-01-02"))
	}
	// week 48 = epoch + 329 days
	if got := WeekStartDate(epoch, TotalWeeks); got.Format("2006-01-02") != "2026-11-28" {
		t.Errorf("week 48 start = %s, want 2026-11-28", got.Format("2006-01-02"))
	}
}

func TestWeekEndAndCurrent(t *testing.T) {
	epoch := mustDate(t, "2026-01-03")

	if got := WeekEndDate(epoch, 1).Format("2006-01-02"); got != "2026-01-09" {
		t.Errorf("week 1 end = %s, want 2026-01-09", got)
	}

	inside := mustDate(t, "2026-01-07")
	if !IsCurrentWeek(epoch, 1, inside) {
		t.Error("2026-01-07 should fall inside week 1")
	}
	if IsPastWeek(epoch, 1, inside) {
		t.Error("week 1 should not be past on 2026-01-07")
	}
	if !IsPastWeek(epoch, 1, mustDate(t, "2026-01-10")) {
		t.Error("week 1 should be past on 2026-01-10")
	}
}

package domain

import "time"

// The savings cycle runs for a fixed number of weekly contribution periods
// counted from a program-wide epoch date. Week numbers are derived from wall
// clock time only; nothing about the "current week" is persisted.
const (
	TotalWeeks          = 48
	DefaultWeeklyAmount = 10.0
	DefaultEpochDate    = "2026-01-03"
)

// WeekNumberAt returns the 1-based week number for t, clamped to
// [1, TotalWeeks]. Dates before the epoch map to week 1.
func WeekNumberAt(epoch, t time.Time) int {
	days := int(t.Sub(epoch).Hours() / 24)
	week := days/7 + 1
	if week < 1 {
		return 1
	}
	if week > TotalWeeks {
		return TotalWeeks
	}
	return week
}

// WeekStartDate returns epoch + 7*(weekNo-1) days.
func WeekStartDate(epoch time.Time, weekNo int) time.Time {
	return epoch.AddDate(0, 0, (weekNo-1)*7)
}

// WeekEndDate returns the last calendar day of the week, start + 6 days.
func WeekEndDate(epoch time.Time, weekNo int) time.Time {
	return WeekStartDate(epoch, weekNo).AddDate(0, 0, 6)
}

// IsCurrentWeek reports whether t falls inside the given week.
func IsCurrentWeek(epoch time.Time, weekNo int, t time.Time) bool {
	return WeekNumberAt(epoch, t) == weekNo
}

// IsPastWeek reports whether the week has fully elapsed at t.
func IsPastWeek(epoch time.Time, weekNo int, t time.Time) bool {
	return t.After(WeekEndDate(epoch, weekNo))
}

// Package calendar maps Monday-based day indices onto concrete local dates.
package calendar

import (
	"fmt"
	"time"
)

const (
	Layout     = "2006-01-02"
	DaysInWeek = 7
)

// DayIndex converts a weekday to the 0=Monday..6=Sunday index.
func DayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// DateKey formats t as YYYY-MM-DD using its own location.
func DateKey(t time.Time) string {
	return t.Format(Layout)
}

// DateOfCurrentWeek returns the date key of dayIndex within the week containing now.
func DateOfCurrentWeek(now time.Time, dayIndex int) string {
	diff := dayIndex - DayIndex(now)
	return DateKey(now.AddDate(0, 0, diff))
}

func ValidDayIndex(dayIndex int) error {
	if dayIndex < 0 || dayIndex >= DaysInWeek {
		return fmt.Errorf("day index %d out of range 0..6", dayIndex)
	}
	return nil
}

func IsWeekend(dayIndex int) bool {
	return dayIndex > 4
}

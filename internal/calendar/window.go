// Package calendar holds the date arithmetic shared by every screen: the
// fixed 77-day window, the Sunday-aligned week grid, and the date-key
// normalization used to match assessments to calendar cells without
// timezone drift.
package calendar

import (
	"time"

	"github.com/nhle/assessment-calendar/internal/model"
)

const (
	// DaysBack is how far the window reaches behind the reference day.
	DaysBack = 14

	// DaysAhead is how far the window reaches past the reference day.
	DaysAhead = 62

	// WindowSize is the total number of days produced by Window.
	WindowSize = DaysBack + DaysAhead + 1
)

// Window returns the 77-day span [today-14, today+62] as ordered day
// descriptors, one per calendar day. Exactly one descriptor carries
// IsToday. The reference instant is always passed in, never read from a
// global clock, so callers can fix it.
func Window(today time.Time) []model.CalendarDay {
	start := today.AddDate(0, 0, -DaysBack)

	days := make([]model.CalendarDay, 0, WindowSize)
	for i := 0; i < WindowSize; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, model.CalendarDay{
			Day:       d.Day(),
			Month:     d.Month(),
			Year:      d.Year(),
			IsToday:   sameLocalDate(d, today),
			Date:      d,
			DayOfWeek: d.Weekday(),
		})
	}
	return days
}

// sameLocalDate compares calendar dates by their local components. Comparing
// instants would break around midnight.
func sameLocalDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

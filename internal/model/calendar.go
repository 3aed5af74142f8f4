package model

import "time"

// CalendarDay describes one cell of the scrollable calendar grid. Values are
// derived from a reference "today" on every render pass and never stored.
type CalendarDay struct {
	Day       int
	Month     time.Month
	Year      int
	IsToday   bool
	Date      time.Time
	DayOfWeek time.Weekday
}

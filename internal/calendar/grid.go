package calendar

import "github.com/nhle/assessment-calendar/internal/model"

// WeekWidth is the number of slots in a packed week row.
const WeekWidth = 7

// Weeks packs an ordered day sequence into 7-slot rows aligned to fixed
// Sunday..Saturday columns. The first row is left-padded with nil slots up
// to the first day's weekday, and the last row is right-padded with nil up
// to seven. An empty input yields zero rows.
//
// Invariant: for every non-nil slot, int(slot.DayOfWeek) equals its column
// index.
func Weeks(days []model.CalendarDay) [][]*model.CalendarDay {
	if len(days) == 0 {
		return nil
	}

	var weeks [][]*model.CalendarDay
	row := make([]*model.CalendarDay, 0, WeekWidth)

	for i := 0; i < int(days[0].DayOfWeek); i++ {
		row = append(row, nil)
	}

	for i := range days {
		row = append(row, &days[i])
		if len(row) == WeekWidth {
			weeks = append(weeks, row)
			row = make([]*model.CalendarDay, 0, WeekWidth)
		}
	}

	if len(row) > 0 {
		for len(row) < WeekWidth {
			row = append(row, nil)
		}
		weeks = append(weeks, row)
	}

	return weeks
}

package calendar

import (
	"testing"
	"time"
)

func TestWindowSpansFixedRange(t *testing.T) {
	today := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)
	days := Window(today)

	if len(days) != WindowSize {
		t.Fatalf("expected %d days, got %d", WindowSize, len(days))
	}

	wantStart := today.AddDate(0, 0, -DaysBack)
	if got := LocalKey(days[0].Date); got != LocalKey(wantStart) {
		t.Errorf("window starts at %s, want %s", got, LocalKey(wantStart))
	}

	wantEnd := today.AddDate(0, 0, DaysAhead)
	if got := LocalKey(days[len(days)-1].Date); got != LocalKey(wantEnd) {
		t.Errorf("window ends at %s, want %s", got, LocalKey(wantEnd))
	}
}

func TestWindowStrictlyIncreasingNoGaps(t *testing.T) {
	today := time.Date(2024, time.December, 31, 23, 59, 0, 0, time.Local)
	days := Window(today)

	for i := 1; i < len(days); i++ {
		prev := days[i-1].Date
		next := prev.AddDate(0, 0, 1)
		if LocalKey(days[i].Date) != LocalKey(next) {
			t.Fatalf("gap at index %d: %s followed by %s",
				i, LocalKey(prev), LocalKey(days[i].Date))
		}
	}
}

func TestWindowExactlyOneToday(t *testing.T) {
	for _, ref := range []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.February, 29, 12, 0, 0, 0, time.Local),
		time.Date(2025, time.July, 4, 23, 59, 59, 0, time.Local),
	} {
		count := 0
		var marked time.Time
		for _, d := range Window(ref) {
			if d.IsToday {
				count++
				marked = d.Date
			}
		}
		if count != 1 {
			t.Errorf("reference %s: %d days marked today, want 1", LocalKey(ref), count)
			continue
		}
		if LocalKey(marked) != LocalKey(ref) {
			t.Errorf("reference %s: marked day is %s", LocalKey(ref), LocalKey(marked))
		}
	}
}

func TestWindowIsDeterministic(t *testing.T) {
	ref := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.Local)

	first := Window(ref)
	second := Window(ref)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Day != second[i].Day ||
			first[i].Month != second[i].Month ||
			first[i].Year != second[i].Year ||
			first[i].IsToday != second[i].IsToday ||
			first[i].DayOfWeek != second[i].DayOfWeek {
			t.Fatalf("descriptor %d differs between invocations", i)
		}
	}
}

func TestWindowDayOfWeekMatchesDate(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
	for i, d := range Window(ref) {
		if d.DayOfWeek != d.Date.Weekday() {
			t.Errorf("day %d: DayOfWeek %v does not match date %s",
				i, d.DayOfWeek, LocalKey(d.Date))
		}
	}
}

package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/nhle/assessment-calendar/internal/model"
)

// LocalKey formats t as YYYY-MM-DD using its local year/month/day
// components. Converting to UTC before formatting shifts the calendar day
// near midnight for zones behind UTC, which is exactly the bug this key
// exists to avoid.
func LocalKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ExtractKey returns the date portion of a stored date value verbatim,
// cutting at the first 'T' or space separator. The remainder is never
// re-parsed into a time.Time: round-tripping "2024-03-01T00:00:00.000Z"
// through a timezone-aware parser lands on 2024-02-29 west of UTC.
func ExtractKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, "T "); i >= 0 {
		return raw[:i]
	}
	return raw
}

// OnDay reports whether the assessment falls on the given calendar cell.
// This string comparison is the only day-matching contract in the client.
func OnDay(a model.Assessment, day model.CalendarDay) bool {
	return ExtractKey(a.SubmitDate) == LocalKey(day.Date)
}

// AssessmentsOn filters assessments down to those due on the given day.
func AssessmentsOn(assessments []model.Assessment, day model.CalendarDay) []model.Assessment {
	var out []model.Assessment
	for _, a := range assessments {
		if OnDay(a, day) {
			out = append(out, a)
		}
	}
	return out
}

// DisplayKey renders a stored date value as dd-mm-yyyy for detail panels,
// under the same no-reparse rule as ExtractKey. Inputs that do not look
// like a date key come back unchanged.
func DisplayKey(raw string) string {
	key := ExtractKey(raw)
	parts := strings.SplitN(key, "-", 3)
	if len(parts) != 3 || !allDigits(parts[0]) || !allDigits(parts[1]) || !allDigits(parts[2]) {
		return raw
	}
	return pad2(parts[2]) + "-" + pad2(parts[1]) + "-" + parts[0]
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

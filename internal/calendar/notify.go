package calendar

import (
	"fmt"
	"math"
	"time"
)

// notifyHour is the local hour a simulated reminder would fire.
const notifyHour = 9

// NotifyAt returns the instant a simulated reminder for an assessment due
// on the stored date would fire: 09:00 local time, daysBefore days ahead
// of the due date.
func NotifyAt(rawSubmitDate string, daysBefore int) (time.Time, error) {
	key := ExtractKey(rawSubmitDate)
	due, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date key %q: %w", key, err)
	}
	d := due.AddDate(0, 0, -daysBefore)
	return time.Date(d.Year(), d.Month(), d.Day(), notifyHour, 0, 0, 0, time.Local), nil
}

// TimingMessage describes when the simulated reminder would fire relative
// to now. No notification is ever delivered; the text is all there is.
func TimingMessage(rawSubmitDate string, daysBefore int, now time.Time) string {
	at, err := NotifyAt(rawSubmitDate, daysBefore)
	if err != nil {
		return "Unable to determine notification timing"
	}
	if !at.After(now) {
		return "Notification date has passed"
	}

	days := int(math.Ceil(at.Sub(now).Hours() / 24))
	if days < 1 {
		days = 1
	}

	plural := "s"
	if days == 1 {
		plural = ""
	}
	return fmt.Sprintf("Will notify on %s at 9:00 AM (in %d day%s)",
		at.Format("Mon Jan 2 2006"), days, plural)
}

package model

// AssessmentNote is a free-text note attached to an assessment. Notes live
// only in the client's local database and never reach the server.
type AssessmentNote struct {
	AssessmentID int    `json:"assessment_id" db:"assessment_id"`
	Notes        string `json:"notes" db:"notes"`
}

// DaysBeforeOptions are the reminder lead times the settings and detail
// screens cycle through.
var DaysBeforeOptions = []int{1, 2, 3, 5, 7}

// DefaultDaysBefore is the lead time assigned to newly seen assessments.
const DefaultDaysBefore = 1

// NotificationPreference is the per-assessment simulated reminder setting.
// Preferences are kept in the client's local database so a refetch of the
// assessment list does not reset them.
type NotificationPreference struct {
	AssessmentID int  `json:"assessment_id" db:"assessment_id"`
	Enabled      bool `json:"enabled" db:"enabled"`
	DaysBefore   int  `json:"days_before" db:"days_before"`
}

// DefaultPreference returns the preference used before the user has touched
// the toggle for the given assessment.
func DefaultPreference(assessmentID int) NotificationPreference {
	return NotificationPreference{
		AssessmentID: assessmentID,
		Enabled:      false,
		DaysBefore:   DefaultDaysBefore,
	}
}

// NextDaysBefore returns the option following current in DaysBeforeOptions,
// wrapping around at the end.
func NextDaysBefore(current int) int {
	for i, d := range DaysBeforeOptions {
		if d == current {
			return DaysBeforeOptions[(i+1)%len(DaysBeforeOptions)]
		}
	}
	return DaysBeforeOptions[0]
}

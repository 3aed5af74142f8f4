package store

import (
	"context"

	"github.com/nhle/assessment-calendar/internal/model"
)

// Store defines the client's local persistence for per-assessment notes and
// simulated notification preferences. Everything here is device-local; the
// API server never sees it.
type Store interface {
	// === Notes ===

	SaveNote(ctx context.Context, note model.AssessmentNote) error
	GetNote(ctx context.Context, assessmentID int) (*model.AssessmentNote, error)
	GetNotes(ctx context.Context) ([]model.AssessmentNote, error)
	DeleteNote(ctx context.Context, assessmentID int) error

	// === Notification preferences ===

	UpsertPreference(ctx context.Context, pref model.NotificationPreference) error
	GetPreference(ctx context.Context, assessmentID int) (*model.NotificationPreference, error)
	GetPreferences(ctx context.Context) ([]model.NotificationPreference, error)

	// EnsurePreferences inserts a default preference for each listed
	// assessment ID that has none yet. Existing rows are left untouched,
	// so a refetch never resets the user's toggles.
	EnsurePreferences(ctx context.Context, assessmentIDs []int, defaultDaysBefore int) error

	// PruneOrphans removes notes and preferences whose assessment ID is
	// not in the given set. Called after a successful full fetch so rows
	// for server-deleted assessments do not pile up forever.
	PruneOrphans(ctx context.Context, liveIDs []int) error

	Close() error
}

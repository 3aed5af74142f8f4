package store_test

import (
	"context"
	"testing"

	"github.com/nhle/assessment-calendar/internal/model"
	"github.com/nhle/assessment-calendar/tests/testutil"
)

func TestSaveAndGetNote(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	note := model.AssessmentNote{AssessmentID: 7, Notes: "revise chapter 3"}
	if err := s.SaveNote(ctx, note); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}

	got, err := s.GetNote(ctx, 7)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got == nil || got.Notes != "revise chapter 3" {
		t.Errorf("got %+v, want the saved note", got)
	}
}

func TestSaveNoteOverwrites(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SaveNote(ctx, model.AssessmentNote{AssessmentID: 1, Notes: "first"}); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	if err := s.SaveNote(ctx, model.AssessmentNote{AssessmentID: 1, Notes: "second"}); err != nil {
		t.Fatalf("SaveNote overwrite: %v", err)
	}

	got, err := s.GetNote(ctx, 1)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Notes != "second" {
		t.Errorf("note = %q, want %q", got.Notes, "second")
	}

	notes, err := s.GetNotes(ctx)
	if err != nil {
		t.Fatalf("GetNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("have %d notes, want 1", len(notes))
	}
}

func TestGetNoteMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.GetNote(context.Background(), 99)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing note, got %+v", got)
	}
}

func TestDeleteNote(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SaveNote(ctx, model.AssessmentNote{AssessmentID: 2, Notes: "x"}); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	if err := s.DeleteNote(ctx, 2); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	got, err := s.GetNote(ctx, 2)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got != nil {
		t.Errorf("note survived deletion: %+v", got)
	}
}

func TestUpsertAndGetPreference(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	pref := model.NotificationPreference{AssessmentID: 3, Enabled: true, DaysBefore: 5}
	if err := s.UpsertPreference(ctx, pref); err != nil {
		t.Fatalf("UpsertPreference: %v", err)
	}

	got, err := s.GetPreference(ctx, 3)
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if got == nil || !got.Enabled || got.DaysBefore != 5 {
		t.Errorf("got %+v, want enabled with days_before 5", got)
	}
}

func TestEnsurePreferencesKeepsExistingToggles(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	// User enabled a reminder for assessment 1.
	if err := s.UpsertPreference(ctx, model.NotificationPreference{
		AssessmentID: 1, Enabled: true, DaysBefore: 7,
	}); err != nil {
		t.Fatalf("UpsertPreference: %v", err)
	}

	// A refetch brings back assessments 1 and 2.
	if err := s.EnsurePreferences(ctx, []int{1, 2}, model.DefaultDaysBefore); err != nil {
		t.Fatalf("EnsurePreferences: %v", err)
	}

	one, err := s.GetPreference(ctx, 1)
	if err != nil {
		t.Fatalf("GetPreference(1): %v", err)
	}
	if !one.Enabled || one.DaysBefore != 7 {
		t.Errorf("existing toggle was reset: %+v", one)
	}

	two, err := s.GetPreference(ctx, 2)
	if err != nil {
		t.Fatalf("GetPreference(2): %v", err)
	}
	if two == nil || two.Enabled || two.DaysBefore != model.DefaultDaysBefore {
		t.Errorf("new assessment should get the disabled default, got %+v", two)
	}
}

func TestPruneOrphans(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, id := range []int{1, 2, 3} {
		if err := s.SaveNote(ctx, model.AssessmentNote{AssessmentID: id, Notes: "n"}); err != nil {
			t.Fatalf("SaveNote(%d): %v", id, err)
		}
		if err := s.UpsertPreference(ctx, model.NotificationPreference{
			AssessmentID: id, Enabled: true, DaysBefore: 1,
		}); err != nil {
			t.Fatalf("UpsertPreference(%d): %v", id, err)
		}
	}

	// The server now only knows assessments 1 and 3.
	if err := s.PruneOrphans(ctx, []int{1, 3}); err != nil {
		t.Fatalf("PruneOrphans: %v", err)
	}

	notes, err := s.GetNotes(ctx)
	if err != nil {
		t.Fatalf("GetNotes: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("have %d notes after prune, want 2", len(notes))
	}
	for _, n := range notes {
		if n.AssessmentID == 2 {
			t.Error("orphaned note for assessment 2 survived")
		}
	}

	prefs, err := s.GetPreferences(ctx)
	if err != nil {
		t.Fatalf("GetPreferences: %v", err)
	}
	if len(prefs) != 2 {
		t.Errorf("have %d preferences after prune, want 2", len(prefs))
	}
}

func TestPruneOrphansEmptyLiveSet(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SaveNote(ctx, model.AssessmentNote{AssessmentID: 1, Notes: "n"}); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}

	if err := s.PruneOrphans(ctx, nil); err != nil {
		t.Fatalf("PruneOrphans: %v", err)
	}

	notes, err := s.GetNotes(ctx)
	if err != nil {
		t.Fatalf("GetNotes: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("empty live set should clear all notes, %d left", len(notes))
	}
}

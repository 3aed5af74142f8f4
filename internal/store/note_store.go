package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nhle/assessment-calendar/internal/model"
)

// SaveNote inserts or replaces the note for an assessment. An empty note is
// stored as-is; callers that want removal use DeleteNote.
func (s *SQLiteStore) SaveNote(ctx context.Context, note model.AssessmentNote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (assessment_id, notes, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(assessment_id) DO UPDATE SET
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP`,
		note.AssessmentID, note.Notes,
	)
	if err != nil {
		return fmt.Errorf("saving note for assessment %d: %w", note.AssessmentID, err)
	}
	return nil
}

// GetNote retrieves the note for a single assessment, or nil if none exists.
func (s *SQLiteStore) GetNote(ctx context.Context, assessmentID int) (*model.AssessmentNote, error) {
	var note model.AssessmentNote
	err := s.db.GetContext(ctx, &note,
		"SELECT assessment_id, notes FROM notes WHERE assessment_id = ?",
		assessmentID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting note for assessment %d: %w", assessmentID, err)
	}
	return &note, nil
}

// GetNotes retrieves all stored notes.
func (s *SQLiteStore) GetNotes(ctx context.Context) ([]model.AssessmentNote, error) {
	var notes []model.AssessmentNote
	err := s.db.SelectContext(ctx, &notes,
		"SELECT assessment_id, notes FROM notes ORDER BY assessment_id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	return notes, nil
}

// DeleteNote removes the note for an assessment.
func (s *SQLiteStore) DeleteNote(ctx context.Context, assessmentID int) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM notes WHERE assessment_id = ?", assessmentID,
	)
	if err != nil {
		return fmt.Errorf("deleting note for assessment %d: %w", assessmentID, err)
	}
	return nil
}

// PruneOrphans removes notes and preferences for assessment IDs absent from
// liveIDs. With an empty live set every local row goes, matching a server
// whose table was emptied.
func (s *SQLiteStore) PruneOrphans(ctx context.Context, liveIDs []int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"notes", "notification_prefs"} {
		query := fmt.Sprintf("DELETE FROM %s", table)
		var args []interface{}
		if len(liveIDs) > 0 {
			placeholders := strings.TrimSuffix(strings.Repeat("?,", len(liveIDs)), ",")
			query += fmt.Sprintf(" WHERE assessment_id NOT IN (%s)", placeholders)
			for _, id := range liveIDs {
				args = append(args, id)
			}
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("pruning %s: %w", table, err)
		}
	}

	return tx.Commit()
}

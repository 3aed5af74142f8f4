package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/assessment-calendar/internal/model"
)

// UpsertPreference inserts or replaces the notification preference for an
// assessment.
func (s *SQLiteStore) UpsertPreference(ctx context.Context, pref model.NotificationPreference) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_prefs (assessment_id, enabled, days_before, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(assessment_id) DO UPDATE SET
			enabled = excluded.enabled,
			days_before = excluded.days_before,
			updated_at = CURRENT_TIMESTAMP`,
		pref.AssessmentID, boolToInt(pref.Enabled), pref.DaysBefore,
	)
	if err != nil {
		return fmt.Errorf("upserting preference for assessment %d: %w", pref.AssessmentID, err)
	}
	return nil
}

// GetPreference retrieves the preference for a single assessment, or nil if
// the user has never touched it.
func (s *SQLiteStore) GetPreference(ctx context.Context, assessmentID int) (*model.NotificationPreference, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT assessment_id, enabled, days_before FROM notification_prefs WHERE assessment_id = ?",
		assessmentID,
	)

	pref, err := scanPreferenceRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting preference for assessment %d: %w", assessmentID, err)
	}
	return &pref, nil
}

// GetPreferences retrieves all stored preferences.
func (s *SQLiteStore) GetPreferences(ctx context.Context) ([]model.NotificationPreference, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT assessment_id, enabled, days_before FROM notification_prefs ORDER BY assessment_id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}
	defer rows.Close()

	var prefs []model.NotificationPreference
	for rows.Next() {
		var (
			pref    model.NotificationPreference
			enabled int
		)
		if err := rows.Scan(&pref.AssessmentID, &enabled, &pref.DaysBefore); err != nil {
			return nil, fmt.Errorf("scanning preference row: %w", err)
		}
		pref.Enabled = enabled != 0
		prefs = append(prefs, pref)
	}

	return prefs, rows.Err()
}

// EnsurePreferences inserts a default (disabled) preference for each listed
// assessment ID that has no row yet. Rows the user already configured are
// never overwritten.
func (s *SQLiteStore) EnsurePreferences(ctx context.Context, assessmentIDs []int, defaultDaysBefore int) error {
	if len(assessmentIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT OR IGNORE INTO notification_prefs (assessment_id, enabled, days_before)
		VALUES (?, 0, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, id := range assessmentIDs {
		if _, err := stmt.ExecContext(ctx, id, defaultDaysBefore); err != nil {
			return fmt.Errorf("ensuring preference for assessment %d: %w", id, err)
		}
	}

	return tx.Commit()
}

// scanPreferenceRow scans a single preference row from a sqlx.Row.
func scanPreferenceRow(row *sqlx.Row) (model.NotificationPreference, error) {
	var (
		pref    model.NotificationPreference
		enabled int
	)
	if err := row.Scan(&pref.AssessmentID, &enabled, &pref.DaysBefore); err != nil {
		return model.NotificationPreference{}, err
	}
	pref.Enabled = enabled != 0
	return pref, nil
}

package server

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nhle/assessment-calendar/internal/model"
)

// Repository defines the single-table persistence operations behind the
// calendar API. Every operation touches at most one row; there are no
// cross-row transactions.
type Repository interface {
	List(ctx context.Context) ([]model.Assessment, error)
	ListByDate(ctx context.Context, dateKey string) ([]model.Assessment, error)

	// GetByID returns (nil, nil) when no row has the given ID.
	GetByID(ctx context.Context, id int) (*model.Assessment, error)

	Create(ctx context.Context, a *model.Assessment) error
	Update(ctx context.Context, a *model.Assessment) error
	Delete(ctx context.Context, id int) error
}

// GormRepository implements Repository on a GORM MySQL connection.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a repository bound to the given connection.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// List returns the full table ordered by submit_date ascending.
func (r *GormRepository) List(ctx context.Context) ([]model.Assessment, error) {
	var out []model.Assessment
	err := r.db.WithContext(ctx).
		Order("submit_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	return out, nil
}

// ListByDate returns the rows whose submit_date falls on the given
// YYYY-MM-DD date, ordered by submit_date ascending.
func (r *GormRepository) ListByDate(ctx context.Context, dateKey string) ([]model.Assessment, error) {
	var out []model.Assessment
	err := r.db.WithContext(ctx).
		Where("DATE(submit_date) = ?", dateKey).
		Order("submit_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing assessments for %s: %w", dateKey, err)
	}
	return out, nil
}

// GetByID fetches a single row, or (nil, nil) when absent.
func (r *GormRepository) GetByID(ctx context.Context, id int) (*model.Assessment, error) {
	var a model.Assessment
	err := r.db.WithContext(ctx).First(&a, "ID = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting assessment %d: %w", id, err)
	}
	return &a, nil
}

// Create inserts a new row; the generated ID is written back into a.
func (r *GormRepository) Create(ctx context.Context, a *model.Assessment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("creating assessment: %w", err)
	}
	return nil
}

// Update replaces name, description, submit_date, and color of the row with
// a.ID. Existence is the handler's concern; the write itself is
// unconditional.
func (r *GormRepository) Update(ctx context.Context, a *model.Assessment) error {
	err := r.db.WithContext(ctx).
		Model(&model.Assessment{}).
		Where("ID = ?", a.ID).
		Select("name", "description", "submit_date", "color").
		Updates(map[string]interface{}{
			"name":        a.Name,
			"description": a.Description,
			"submit_date": a.SubmitDate,
			"color":       a.Color,
		}).Error
	if err != nil {
		return fmt.Errorf("updating assessment %d: %w", a.ID, err)
	}
	return nil
}

// Delete removes the row with the given ID.
func (r *GormRepository) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Delete(&model.Assessment{}, "ID = ?", id).Error
	if err != nil {
		return fmt.Errorf("deleting assessment %d: %w", id, err)
	}
	return nil
}

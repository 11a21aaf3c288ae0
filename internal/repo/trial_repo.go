// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Trial model.
//
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Rule enforcement (category presence,
// desacato prerequisite, status transitions) lives in services.TrialService.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

// TrialFilter describes the predicates applied by SearchTrials. Zero values
// mean "no constraint".
type TrialFilter struct {
	// Term is matched as a case-insensitive substring against the trial
	// number, plaintiff name, defendant name, and category description.
	Term string
	// TypeTrialID restricts results to one trial type.
	TypeTrialID string
	// From / To bound ArrivalDate inclusively.
	From *time.Time
	To   *time.Time
	// WithActions preloads each trial's actions and their classification.
	WithActions bool
}

// GetTrial fetches a trial by id with its relations preloaded, or ErrNotFound
// if missing.
func GetTrial(ctx context.Context, db *gorm.DB, id string) (*domain.Trial, error) {
	var t domain.Trial
	err := db.WithContext(ctx).
		Preload("TypeTrial").
		Preload("Category").
		Preload("Plaintiff").
		Preload("Defendant").
		Preload("EntryType").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTrial inserts the trial row as given. Validation happens upstream.
func CreateTrial(ctx context.Context, db *gorm.DB, t *domain.Trial) error {
	return db.WithContext(ctx).Create(t).Error
}

// UpdateTrial overwrites the mutable columns of an existing trial. Returns
// ErrNotFound when no row matches id.
func UpdateTrial(ctx context.Context, db *gorm.DB, t *domain.Trial) error {
	res := db.WithContext(ctx).
		Model(&domain.Trial{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"number":        t.Number,
			"type_trial_id": t.TypeTrialID,
			"category_id":   t.CategoryID,
			"plaintiff_id":  t.PlaintiffID,
			"defendant_id":  t.DefendantID,
			"entry_type_id": t.EntryTypeID,
			"arrival_date":  t.ArrivalDate,
			"close_date":    t.CloseDate,
			"status":        t.Status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTrialStatus sets the status column and, when closeDate is non-nil,
// the close date. Returns ErrNotFound when no row matches id.
func UpdateTrialStatus(ctx context.Context, db *gorm.DB, id string, status domain.Status, closeDate *time.Time) error {
	cols := map[string]any{"status": status}
	if closeDate != nil {
		cols["close_date"] = *closeDate
	}
	res := db.WithContext(ctx).
		Model(&domain.Trial{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindTrialByNumberAndType returns the first trial matching the composite
// natural key (number, typeTrialID), or ErrNotFound. This is the lookup used
// for the desacato→Tutela prerequisite.
func FindTrialByNumberAndType(ctx context.Context, db *gorm.DB, number, typeTrialID string) (*domain.Trial, error) {
	var t domain.Trial
	err := db.WithContext(ctx).
		Where("number = ? AND type_trial_id = ?", number, typeTrialID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SearchTrials returns trials matching the filter with relations preloaded,
// ordered by arrival date descending. It returns an empty slice when nothing
// matches.
func SearchTrials(ctx context.Context, db *gorm.DB, f TrialFilter) ([]domain.Trial, error) {
	q := db.WithContext(ctx).
		Model(&domain.Trial{}).
		Preload("TypeTrial").
		Preload("Category").
		Preload("Plaintiff").
		Preload("Defendant").
		Preload("EntryType")

	if f.WithActions {
		q = q.Preload("Actions").Preload("Actions.DescriptionAction").Preload("Actions.DescriptionAction.TypeAction")
	}

	if f.Term != "" {
		like := "%" + f.Term + "%"
		q = q.
			Joins("LEFT JOIN people AS plaintiffs ON plaintiffs.id = trials.plaintiff_id").
			Joins("LEFT JOIN people AS defendants ON defendants.id = trials.defendant_id").
			Joins("LEFT JOIN categories ON categories.id = trials.category_id").
			Where("trials.number LIKE ? OR plaintiffs.name LIKE ? OR defendants.name LIKE ? OR categories.description LIKE ?",
				like, like, like, like)
	}
	if f.TypeTrialID != "" {
		q = q.Where("trials.type_trial_id = ?", f.TypeTrialID)
	}
	if f.From != nil {
		q = q.Where("trials.arrival_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("trials.arrival_date <= ?", *f.To)
	}

	var out []domain.Trial
	err := q.Order("trials.arrival_date desc").Find(&out).Error
	return out, err
}

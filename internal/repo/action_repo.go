// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Action and
// DescriptionAction models.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

// ActionFilter describes the predicates applied by SearchActions. Zero values
// mean "no constraint".
type ActionFilter struct {
	// Term is matched as a case-insensitive substring against the action's
	// description wording and its trial number.
	Term string
	// TrialID restricts results to one trial.
	TrialID string
	// From / To bound Date inclusively.
	From *time.Time
	To   *time.Time
}

// GetAction fetches an action by id with its classification preloaded, or
// ErrNotFound if missing.
func GetAction(ctx context.Context, db *gorm.DB, id string) (*domain.Action, error) {
	var a domain.Action
	err := db.WithContext(ctx).
		Preload("DescriptionAction").
		Preload("DescriptionAction.TypeAction").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAction inserts the action row as given.
func CreateAction(ctx context.Context, db *gorm.DB, a *domain.Action) error {
	return db.WithContext(ctx).Create(a).Error
}

// UpdateAction overwrites the mutable columns of an existing action.
// Returns ErrNotFound when no row matches id.
func UpdateAction(ctx context.Context, db *gorm.DB, a *domain.Action) error {
	res := db.WithContext(ctx).
		Model(&domain.Action{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"description_action_id": a.DescriptionActionID,
			"date":                  a.Date,
			"trial_id":              a.TrialID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAction removes an action row. Returns ErrNotFound when no row matches.
func DeleteAction(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Action{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActionsByTrial returns every action recorded against one trial, most
// recent first, with classification preloaded.
func ListActionsByTrial(ctx context.Context, db *gorm.DB, trialID string) ([]domain.Action, error) {
	var out []domain.Action
	err := db.WithContext(ctx).
		Preload("DescriptionAction").
		Preload("DescriptionAction.TypeAction").
		Where("trial_id = ?", trialID).
		Order("date desc").
		Find(&out).Error
	return out, err
}

// SearchActions returns actions matching the filter, most recent first, with
// classification and owning trial preloaded.
func SearchActions(ctx context.Context, db *gorm.DB, f ActionFilter) ([]domain.Action, error) {
	q := db.WithContext(ctx).
		Model(&domain.Action{}).
		Preload("DescriptionAction").
		Preload("DescriptionAction.TypeAction").
		Preload("DescriptionAction.TypeTrial").
		Preload("Trial").
		Preload("Trial.TypeTrial")

	if f.Term != "" {
		like := "%" + f.Term + "%"
		q = q.
			Joins("LEFT JOIN description_actions ON description_actions.id = actions.description_action_id").
			Joins("LEFT JOIN trials ON trials.id = actions.trial_id").
			Where("description_actions.description LIKE ? OR trials.number LIKE ?", like, like)
	}
	if f.TrialID != "" {
		q = q.Where("actions.trial_id = ?", f.TrialID)
	}
	if f.From != nil {
		q = q.Where("actions.date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("actions.date <= ?", *f.To)
	}

	var out []domain.Action
	err := q.Order("actions.date desc").Find(&out).Error
	return out, err
}

// CountActionsByDescriptionAction returns how many actions reference the
// given catalog entry. Used to block deletes of in-use entries.
func CountActionsByDescriptionAction(ctx context.Context, db *gorm.DB, descriptionActionID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Action{}).
		Where("description_action_id = ?", descriptionActionID).
		Count(&n).Error
	return n, err
}

// GetDescriptionAction fetches a catalog entry by id with relations
// preloaded, or ErrNotFound if missing.
func GetDescriptionAction(ctx context.Context, db *gorm.DB, id string) (*domain.DescriptionAction, error) {
	var da domain.DescriptionAction
	err := db.WithContext(ctx).
		Preload("TypeAction").
		Preload("TypeTrial").
		Where("id = ?", id).
		First(&da).Error
	if err != nil {
		return nil, err
	}
	return &da, nil
}

// CreateDescriptionAction inserts a new catalog entry.
func CreateDescriptionAction(ctx context.Context, db *gorm.DB, da *domain.DescriptionAction) error {
	return db.WithContext(ctx).Create(da).Error
}

// UpdateDescriptionAction overwrites the mutable columns of a catalog entry.
// Returns ErrNotFound when no row matches id.
func UpdateDescriptionAction(ctx context.Context, db *gorm.DB, da *domain.DescriptionAction) error {
	res := db.WithContext(ctx).
		Model(&domain.DescriptionAction{}).
		Where("id = ?", da.ID).
		Updates(map[string]any{
			"description":    da.Description,
			"type_action_id": da.TypeActionID,
			"type_trial_id":  da.TypeTrialID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDescriptionAction removes a catalog entry. Returns ErrNotFound when
// no row matches.
func DeleteDescriptionAction(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.DescriptionAction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindDescriptionActionByFields returns a catalog entry matching the unique
// (description, typeActionID, typeTrialID) triple, excluding excludeID when
// non-empty. The description compare is trimmed and case-insensitive.
// Returns ErrNotFound when no row matches.
func FindDescriptionActionByFields(ctx context.Context, db *gorm.DB, description, typeActionID string, typeTrialID *string, excludeID string) (*domain.DescriptionAction, error) {
	q := db.WithContext(ctx).
		Where("LOWER(TRIM(description)) = LOWER(TRIM(?)) AND type_action_id = ?", description, typeActionID)
	if typeTrialID == nil {
		q = q.Where("type_trial_id IS NULL")
	} else {
		q = q.Where("type_trial_id = ?", *typeTrialID)
	}
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var da domain.DescriptionAction
	if err := q.First(&da).Error; err != nil {
		return nil, err
	}
	return &da, nil
}

// ListDescriptionActions returns catalog entries, optionally restricted to a
// set of trial-type ids plus the general (NULL-scoped) entries.
//
// Semantics:
//   - scope == nil: no filter, every entry.
//   - scope != nil: entries whose type_trial_id is NULL or in scope. An empty
//     non-nil scope returns only the general entries.
func ListDescriptionActions(ctx context.Context, db *gorm.DB, scope []string) ([]domain.DescriptionAction, error) {
	q := db.WithContext(ctx).
		Preload("TypeAction").
		Preload("TypeTrial").
		Order("description asc")

	if scope != nil {
		if len(scope) == 0 {
			q = q.Where("type_trial_id IS NULL")
		} else {
			q = q.Where("type_trial_id IS NULL OR type_trial_id IN ?", scope)
		}
	}

	var out []domain.DescriptionAction
	err := q.Find(&out).Error
	return out, err
}

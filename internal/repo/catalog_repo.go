// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read access to the administered catalogs:
// trial types, categories, entry types, and action types.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
//
// Error semantics:
//   - When a row is not found, point lookups return gorm.ErrRecordNotFound
//     (also exported in this package as ErrNotFound).
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

// GetTypeTrial fetches a trial type by id, or ErrNotFound if missing.
func GetTypeTrial(ctx context.Context, db *gorm.DB, id string) (*domain.TypeTrial, error) {
	var tt domain.TypeTrial
	if err := db.WithContext(ctx).Where("id = ?", id).First(&tt).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

// FindTypeTrialByName fetches a trial type by its stored name. The comparison
// is case-insensitive unless caseSensitive is set. Returns ErrNotFound when
// no row matches.
func FindTypeTrialByName(ctx context.Context, db *gorm.DB, name string, caseSensitive bool) (*domain.TypeTrial, error) {
	var tt domain.TypeTrial
	q := db.WithContext(ctx)
	if caseSensitive {
		q = q.Where("name = ?", name)
	} else {
		q = q.Where("LOWER(name) = LOWER(?)", name)
	}
	if err := q.First(&tt).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

// ListTypeTrials returns every trial type ordered by name.
func ListTypeTrials(ctx context.Context, db *gorm.DB) ([]domain.TypeTrial, error) {
	var out []domain.TypeTrial
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// GetCategory fetches a category by id, or ErrNotFound if missing.
func GetCategory(ctx context.Context, db *gorm.DB, id string) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategoriesByTypeTrial returns the categories belonging to one trial
// type, ordered by description. An unknown type id yields an empty slice.
func ListCategoriesByTypeTrial(ctx context.Context, db *gorm.DB, typeTrialID string) ([]domain.Category, error) {
	var out []domain.Category
	err := db.WithContext(ctx).
		Where("type_trial_id = ?", typeTrialID).
		Order("description asc").
		Find(&out).Error
	return out, err
}

// ListEntryTypes returns every entry type ordered by description.
func ListEntryTypes(ctx context.Context, db *gorm.DB) ([]domain.EntryType, error) {
	var out []domain.EntryType
	err := db.WithContext(ctx).Order("description asc").Find(&out).Error
	return out, err
}

// GetTypeAction fetches an action type by id, or ErrNotFound if missing.
func GetTypeAction(ctx context.Context, db *gorm.DB, id string) (*domain.TypeAction, error) {
	var ta domain.TypeAction
	if err := db.WithContext(ctx).Where("id = ?", id).First(&ta).Error; err != nil {
		return nil, err
	}
	return &ta, nil
}

// ListTypeActions returns every action type ordered by description.
func ListTypeActions(ctx context.Context, db *gorm.DB) ([]domain.TypeAction, error) {
	var out []domain.TypeAction
	err := db.WithContext(ctx).Order("description asc").Find(&out).Error
	return out, err
}

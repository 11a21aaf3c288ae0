// Package services – trial type registry.
//
// The registry is the single boundary where free-form trial-type names are
// resolved to catalog rows. It is injected as an interface so tests can
// substitute a fixture without touching the database, and so the synonym
// table below stays in exactly one place.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/repo"
)

// TypeRegistry is a read-only lookup capability over the trial-type catalog.
// Lookups that find no match return (nil, nil): absence is an answer, not an
// error. Callers that require the type to exist escalate nil to a validation
// error themselves.
type TypeRegistry interface {
	// ByID resolves a trial type by primary key.
	ByID(ctx context.Context, id string) (*domain.TypeTrial, error)
	// ByName resolves a trial type by stored name, case-insensitively unless
	// caseSensitive is set.
	ByName(ctx context.Context, name string, caseSensitive bool) (*domain.TypeTrial, error)
	// All returns every registered trial type.
	All(ctx context.Context) ([]domain.TypeTrial, error)
}

// categorySynonyms maps user-facing trial-type labels to the stored type
// whose category set (and, for searches, whose rows) should be used.
//
// "Ordinario"→"Laboral" is an apparent historical rename kept for category
// and filter lookups only; it is deliberately NOT part of TrialKind
// resolution. "Incidente de desacato"→"Tutela" encodes that the two types
// share one category set.
var categorySynonyms = map[string]string{
	"ordinario":             "Laboral",
	"incidente de desacato": "Tutela",
}

// CategoryLookupName returns the stored trial-type name whose categories
// apply to the given user-facing label. Labels without a synonym map to
// themselves.
func CategoryLookupName(label string) string {
	if stored, ok := categorySynonyms[domain.FoldName(label)]; ok {
		return stored
	}
	return label
}

// searchSynonyms is the narrower mapping applied when filtering trials by a
// user-facing type label. Only the Ordinario/Laboral rename applies here;
// desacato trials keep their own type and must not be folded into Tutela
// results.
var searchSynonyms = map[string]string{
	"ordinario": "Laboral",
}

// SearchTypeName returns the stored trial-type name to filter by for the
// given user-facing label.
func SearchTypeName(label string) string {
	if stored, ok := searchSynonyms[domain.FoldName(label)]; ok {
		return stored
	}
	return label
}

// DBTypeRegistry is the repository-backed TypeRegistry used in production.
type DBTypeRegistry struct {
	DB *gorm.DB
}

// ByID resolves a trial type by id, returning (nil, nil) when absent.
func (r *DBTypeRegistry) ByID(ctx context.Context, id string) (*domain.TypeTrial, error) {
	tt, err := repo.GetTypeTrial(ctx, r.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return tt, err
}

// ByName resolves a trial type by stored name, returning (nil, nil) when
// absent.
func (r *DBTypeRegistry) ByName(ctx context.Context, name string, caseSensitive bool) (*domain.TypeTrial, error) {
	tt, err := repo.FindTypeTrialByName(ctx, r.DB, name, caseSensitive)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return tt, err
}

// All returns every registered trial type ordered by name.
func (r *DBTypeRegistry) All(ctx context.Context) ([]domain.TypeTrial, error) {
	return repo.ListTypeTrials(ctx, r.DB)
}

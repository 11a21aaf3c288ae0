// Package services – TrialService
//
// This file implements the TrialService, which gates every write to the
// trials table behind the classification rules: the category-presence rule
// for pago por consignación, the desacato→Tutela prerequisite on the shared
// case number, the party-distinctness invariant, and the close-date rule for
// archived trials. Service-level errors (ErrDuplicateTrialID,
// ErrCategoryRequired, ErrMissingPrerequisite, ...) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/repo"
)

// TrialService implements the use-cases around trial records. It is stateless
// between calls; each call performs a sequence of reads against the store and
// at most one write.
//
// Concurrency note: two simultaneous Create calls for an incidente de
// desacato referencing the same Tutela are not coordinated here. The
// prerequisite check and the dependent insert can race; the only guard is the
// store's primary-key constraint. This is an accepted gap, not something this
// layer papers over with locks.
type TrialService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Registry resolves trial-type references.
	Registry TypeRegistry
}

// NewTrialService constructs a TrialService backed by the given database.
func NewTrialService(db *gorm.DB) *TrialService {
	return &TrialService{DB: db, Registry: &DBTypeRegistry{DB: db}}
}

// Create validates and persists a new trial.
//
// Validation order:
//  1. id must be free (ErrDuplicateTrialID)
//  2. plaintiff ≠ defendant (ErrSameParty)
//  3. type must resolve (ErrUnknownTrialType)
//  4. category presence per kind (ErrCategoryNotAllowed / ErrCategoryRequired)
//  5. desacato prerequisite: the Tutela type must be registered
//     (ErrTutelaTypeMissing) and a Tutela trial with the same number must
//     already exist (ErrMissingPrerequisite)
//
// Status is stored as supplied; ARCHIVADO defaults the close date to now
// when none was given.
func (s *TrialService) Create(ctx context.Context, t *domain.Trial) error {
	if _, err := repo.GetTrial(ctx, s.DB, t.ID); err == nil {
		return ErrDuplicateTrialID
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	if t.PlaintiffID == t.DefendantID {
		return ErrSameParty
	}

	kind, err := s.resolveKind(ctx, t.TypeTrialID)
	if err != nil {
		return err
	}
	if err := checkCategoryRule(kind, t.CategoryID); err != nil {
		return err
	}

	if kind == domain.KindIncidenteDesacato {
		tutela, err := s.Registry.ByName(ctx, "Tutela", false)
		if err != nil {
			return err
		}
		if tutela == nil {
			return ErrTutelaTypeMissing
		}
		if _, err := repo.FindTrialByNumberAndType(ctx, s.DB, t.Number, tutela.ID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMissingPrerequisite
			}
			return err
		}
	}

	applyCloseDateRule(t)
	return repo.CreateTrial(ctx, s.DB, t)
}

// Edit re-validates the category rule against the new type/category pair and
// overwrites the trial. The desacato prerequisite is checked at creation time
// only; the type is immutable in practice and an archived Tutela remains a
// valid anchor for its incidente.
func (s *TrialService) Edit(ctx context.Context, t *domain.Trial) error {
	if _, err := repo.GetTrial(ctx, s.DB, t.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTrialNotFound
		}
		return err
	}

	if t.PlaintiffID == t.DefendantID {
		return ErrSameParty
	}

	kind, err := s.resolveKind(ctx, t.TypeTrialID)
	if err != nil {
		return err
	}
	if err := checkCategoryRule(kind, t.CategoryID); err != nil {
		return err
	}

	applyCloseDateRule(t)
	return repo.UpdateTrial(ctx, s.DB, t)
}

// UpdateStatus transitions a trial's status. ARCHIVADO sets the close date to
// the supplied value, or to the current time when none is given; any other
// status leaves the close date untouched. Arbitrary transitions are allowed:
// ARCHIVADO is terminal only by convention.
func (s *TrialService) UpdateStatus(ctx context.Context, trialID string, status domain.Status, closeDate *time.Time) error {
	if !domain.ValidStatus(status) {
		return ErrInvalidStatus
	}
	if _, err := repo.GetTrial(ctx, s.DB, trialID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTrialNotFound
		}
		return err
	}

	if status == domain.StatusArchivado {
		cd := time.Now().UTC()
		if closeDate != nil {
			cd = *closeDate
		}
		return repo.UpdateTrialStatus(ctx, s.DB, trialID, status, &cd)
	}
	return repo.UpdateTrialStatus(ctx, s.DB, trialID, status, nil)
}

// Get returns a trial by id, or ErrTrialNotFound.
func (s *TrialService) Get(ctx context.Context, id string) (*domain.Trial, error) {
	t, err := repo.GetTrial(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTrialNotFound
	}
	return t, err
}

// Search returns trials matching a free-text term and an optional user-facing
// type label. The label passes through the search synonym table ("Ordinario"
// filters by the stored "Laboral" type); an unknown label simply applies no
// type filter.
func (s *TrialService) Search(ctx context.Context, term, typeLabel string) ([]domain.Trial, error) {
	f := repo.TrialFilter{Term: strings.TrimSpace(term)}

	if lbl := strings.TrimSpace(typeLabel); lbl != "" {
		tt, err := s.Registry.ByName(ctx, SearchTypeName(lbl), true)
		if err != nil {
			return nil, err
		}
		if tt != nil {
			f.TypeTrialID = tt.ID
		}
	}
	return repo.SearchTrials(ctx, s.DB, f)
}

// CategoriesByTypeName returns the categories applicable to a user-facing
// trial-type label, routing through the category synonym table so "Incidente
// de desacato" yields Tutela's categories and "Ordinario" yields Laboral's.
// An unknown label yields an empty slice.
func (s *TrialService) CategoriesByTypeName(ctx context.Context, label string) ([]domain.Category, error) {
	tt, err := s.Registry.ByName(ctx, CategoryLookupName(label), false)
	if err != nil {
		return nil, err
	}
	if tt == nil {
		return []domain.Category{}, nil
	}
	return repo.ListCategoriesByTypeTrial(ctx, s.DB, tt.ID)
}

// Types returns every registered trial type.
func (s *TrialService) Types(ctx context.Context) ([]domain.TypeTrial, error) {
	return s.Registry.All(ctx)
}

// EntryTypes returns every registered entry type.
func (s *TrialService) EntryTypes(ctx context.Context) ([]domain.EntryType, error) {
	return repo.ListEntryTypes(ctx, s.DB)
}

// resolveKind maps a trial-type id to its TrialKind, failing with
// ErrUnknownTrialType when the id does not resolve.
func (s *TrialService) resolveKind(ctx context.Context, typeTrialID string) (domain.TrialKind, error) {
	tt, err := s.Registry.ByID(ctx, typeTrialID)
	if err != nil {
		return domain.KindOther, err
	}
	if tt == nil {
		return domain.KindOther, ErrUnknownTrialType
	}
	return domain.ParseTrialKind(tt.Name), nil
}

// checkCategoryRule enforces the category-presence invariant for a kind.
func checkCategoryRule(kind domain.TrialKind, categoryID *string) error {
	hasCategory := categoryID != nil && *categoryID != ""
	if !kind.RequiresCategory() {
		if hasCategory {
			return ErrCategoryNotAllowed
		}
		return nil
	}
	if !hasCategory {
		return ErrCategoryRequired
	}
	return nil
}

// applyCloseDateRule defaults the close date for archived trials.
func applyCloseDateRule(t *domain.Trial) {
	if t.Status == domain.StatusArchivado && t.CloseDate == nil {
		now := time.Now().UTC()
		t.CloseDate = &now
	}
}

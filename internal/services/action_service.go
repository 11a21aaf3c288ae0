// Package services – ActionService
//
// This file implements the ActionService, which manages procedural actions
// ("actuaciones") and the description-action catalog. It is the single source
// of truth for the trial-type family equivalence (Ordinario↔Ejecutivo,
// Tutela↔Incidente de desacato) that decides which action vocabulary applies
// to a trial, so the UI and the statistics aggregator never disagree.
//
// Recording an action can simultaneously advance its trial's procedural
// stage. That flow is modeled as one explicit use case returning a composite
// outcome: the two writes are best-effort ordered, not transactional, and a
// failed second step is surfaced as a typed partial failure rather than
// rolled back.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/repo"
)

// ActionService implements the use-cases around actions and their catalog.
type ActionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Registry resolves trial-type references.
	Registry TypeRegistry
	// Trials performs the cascaded status update when an action submission
	// carries one.
	Trials *TrialService
}

// NewActionService constructs an ActionService backed by the given database.
func NewActionService(db *gorm.DB) *ActionService {
	return &ActionService{DB: db, Registry: &DBTypeRegistry{DB: db}, Trials: NewTrialService(db)}
}

// ActionOutcome is the composite result of Add. The action write and the
// cascaded status update succeed or fail independently; StatusErr carries the
// second-step failure when the action itself was persisted.
type ActionOutcome struct {
	// Action is the persisted action row.
	Action *domain.Action
	// StatusApplied reports whether a cascaded status update ran and
	// succeeded.
	StatusApplied bool
	// StatusErr is non-nil when the action was created but the cascaded
	// status update failed. The caller must surface this partial failure;
	// the action is NOT rolled back.
	StatusErr error
}

// Add validates and persists a new action. When status is non-empty and the
// action is tied to a trial, the trial's status is updated afterwards as a
// second, best-effort write (see ActionOutcome).
//
// Errors (first write): ErrDuplicateActionID, ErrDescriptionActionNotFound,
// ErrTrialNotFound.
func (s *ActionService) Add(ctx context.Context, a *domain.Action, status domain.Status, closeDate *time.Time) (*ActionOutcome, error) {
	if _, err := repo.GetAction(ctx, s.DB, a.ID); err == nil {
		return nil, ErrDuplicateActionID
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	if _, err := repo.GetDescriptionAction(ctx, s.DB, a.DescriptionActionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDescriptionActionNotFound
		}
		return nil, err
	}
	if a.TrialID != nil {
		if _, err := repo.GetTrial(ctx, s.DB, *a.TrialID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrTrialNotFound
			}
			return nil, err
		}
	}

	if err := repo.CreateAction(ctx, s.DB, a); err != nil {
		return nil, err
	}

	out := &ActionOutcome{Action: a}
	if status != "" && a.TrialID != nil {
		if err := s.Trials.UpdateStatus(ctx, *a.TrialID, status, closeDate); err != nil {
			out.StatusErr = err
		} else {
			out.StatusApplied = true
		}
	}
	return out, nil
}

// Edit overwrites an existing action. Fails with ErrActionNotFound when the
// id does not resolve.
func (s *ActionService) Edit(ctx context.Context, a *domain.Action) error {
	if _, err := repo.GetAction(ctx, s.DB, a.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrActionNotFound
		}
		return err
	}
	return repo.UpdateAction(ctx, s.DB, a)
}

// Delete removes an action. Fails with ErrActionNotFound when the id does not
// resolve.
func (s *ActionService) Delete(ctx context.Context, id string) error {
	err := repo.DeleteAction(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrActionNotFound
	}
	return err
}

// ByTrial returns every action recorded against a trial.
func (s *ActionService) ByTrial(ctx context.Context, trialID string) ([]domain.Action, error) {
	return repo.ListActionsByTrial(ctx, s.DB, trialID)
}

// Search returns actions matching a free-text term and an optional trial id.
func (s *ActionService) Search(ctx context.Context, term, trialID string) ([]domain.Action, error) {
	return repo.SearchActions(ctx, s.DB, repo.ActionFilter{
		Term:    strings.TrimSpace(term),
		TrialID: strings.TrimSpace(trialID),
	})
}

// ListApplicableDescriptions returns the description-action vocabulary that
// applies to a trial type.
//
//   - typeTrialID nil: every catalog entry, unfiltered.
//   - Ordinario or Ejecutivo: entries scoped to either of the two families
//     (both resolved afresh by name, tolerating a non-canonical requested id)
//     plus the general, unscoped entries.
//   - any other known type: entries scoped to exactly that id plus the
//     general entries.
//   - unknown id: only the general entries.
func (s *ActionService) ListApplicableDescriptions(ctx context.Context, typeTrialID *string) ([]domain.DescriptionAction, error) {
	if typeTrialID == nil {
		return repo.ListDescriptionActions(ctx, s.DB, nil)
	}

	tt, err := s.Registry.ByID(ctx, *typeTrialID)
	if err != nil {
		return nil, err
	}
	if tt == nil {
		return repo.ListDescriptionActions(ctx, s.DB, []string{})
	}

	switch domain.ParseTrialKind(tt.Name) {
	case domain.KindOrdinario, domain.KindEjecutivo:
		scope := make([]string, 0, 2)
		for _, name := range []string{"Ordinario", "Ejecutivo"} {
			t, err := s.Registry.ByName(ctx, name, false)
			if err != nil {
				return nil, err
			}
			if t != nil {
				scope = append(scope, t.ID)
			}
		}
		return repo.ListDescriptionActions(ctx, s.DB, scope)
	default:
		return repo.ListDescriptionActions(ctx, s.DB, []string{tt.ID})
	}
}

// TypeActions returns every registered action type.
func (s *ActionService) TypeActions(ctx context.Context) ([]domain.TypeAction, error) {
	return repo.ListTypeActions(ctx, s.DB)
}

// CreateDescription validates and persists a new description-action catalog
// entry. The wording is trimmed before storage and compared
// case-insensitively for uniqueness within (typeActionID, typeTrialID).
//
// Errors: ErrUnknownTypeAction, ErrUnknownTrialType, ErrDuplicateDescription.
func (s *ActionService) CreateDescription(ctx context.Context, description, typeActionID string, typeTrialID *string) (*domain.DescriptionAction, error) {
	description = strings.TrimSpace(description)

	if err := s.checkDescriptionRefs(ctx, typeActionID, typeTrialID); err != nil {
		return nil, err
	}
	if _, err := repo.FindDescriptionActionByFields(ctx, s.DB, description, typeActionID, typeTrialID, ""); err == nil {
		return nil, ErrDuplicateDescription
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	da := &domain.DescriptionAction{
		ID:           uuid.NewString(),
		Description:  description,
		TypeActionID: typeActionID,
		TypeTrialID:  typeTrialID,
	}
	if err := repo.CreateDescriptionAction(ctx, s.DB, da); err != nil {
		return nil, err
	}
	return da, nil
}

// EditDescription validates and overwrites an existing catalog entry,
// applying the same reference and uniqueness checks as CreateDescription but
// excluding the entry itself from the duplicate scan.
func (s *ActionService) EditDescription(ctx context.Context, id, description, typeActionID string, typeTrialID *string) (*domain.DescriptionAction, error) {
	description = strings.TrimSpace(description)

	if _, err := repo.GetDescriptionAction(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDescriptionActionNotFound
		}
		return nil, err
	}
	if err := s.checkDescriptionRefs(ctx, typeActionID, typeTrialID); err != nil {
		return nil, err
	}
	if _, err := repo.FindDescriptionActionByFields(ctx, s.DB, description, typeActionID, typeTrialID, id); err == nil {
		return nil, ErrDuplicateDescription
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	da := &domain.DescriptionAction{
		ID:           id,
		Description:  description,
		TypeActionID: typeActionID,
		TypeTrialID:  typeTrialID,
	}
	if err := repo.UpdateDescriptionAction(ctx, s.DB, da); err != nil {
		return nil, err
	}
	return da, nil
}

// DeleteDescription removes a catalog entry unless actions still reference
// it (ErrDescriptionActionInUse).
func (s *ActionService) DeleteDescription(ctx context.Context, id string) error {
	if _, err := repo.GetDescriptionAction(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrDescriptionActionNotFound
		}
		return err
	}
	n, err := repo.CountActionsByDescriptionAction(ctx, s.DB, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrDescriptionActionInUse
	}
	return repo.DeleteDescriptionAction(ctx, s.DB, id)
}

// checkDescriptionRefs validates the foreign references of a catalog entry.
func (s *ActionService) checkDescriptionRefs(ctx context.Context, typeActionID string, typeTrialID *string) error {
	if _, err := repo.GetTypeAction(ctx, s.DB, typeActionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUnknownTypeAction
		}
		return err
	}
	if typeTrialID != nil {
		tt, err := s.Registry.ByID(ctx, *typeTrialID)
		if err != nil {
			return err
		}
		if tt == nil {
			return ErrUnknownTrialType
		}
	}
	return nil
}

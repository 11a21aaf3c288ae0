package mocks

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

// Actions generates count actions. Roughly 80% attach to a trial; the
// description vocabulary follows the same family rules the action service
// applies: general entries everywhere, Ordinario/Ejecutivo sharing their
// catalogs, desacato borrowing Tutela's. Trials must carry their TypeTrial
// relation and descriptions their TypeTrial relation for the filtering to
// work.
func Actions(r *rand.Rand, trials []domain.Trial, descriptions []domain.DescriptionAction, count int) ([]domain.Action, error) {
	if len(trials) == 0 {
		return nil, errors.New("mocks: need trials to generate actions")
	}
	if len(descriptions) == 0 {
		return nil, errors.New("mocks: need descriptions to generate actions")
	}

	out := make([]domain.Action, 0, count)
	for i := 0; i < count; i++ {
		var trial *domain.Trial
		if r.Float64() > 0.2 {
			trial = &trials[r.Intn(len(trials))]
		}

		pool := applicableDescriptions(trial, descriptions)
		if len(pool) == 0 {
			pool = descriptions
		}
		da := pool[r.Intn(len(pool))]

		var date time.Time
		var trialID *string
		if trial != nil {
			trialID = &trial.ID
			end := time.Now().UTC()
			if trial.CloseDate != nil {
				end = *trial.CloseDate
			}
			span := int(end.Sub(trial.ArrivalDate).Hours() / 24)
			if span < 1 {
				span = 1
			}
			date = trial.ArrivalDate.AddDate(0, 0, r.Intn(span))
		} else {
			date = time.Now().UTC().AddDate(0, 0, -r.Intn(730))
		}

		out = append(out, domain.Action{
			ID:                  uuid.NewString(),
			DescriptionActionID: da.ID,
			Date:                date,
			TrialID:             trialID,
		})
	}
	return out, nil
}

// applicableDescriptions narrows the catalog for one trial, nil meaning an
// office-wide action that only takes general entries.
func applicableDescriptions(trial *domain.Trial, descriptions []domain.DescriptionAction) []domain.DescriptionAction {
	var out []domain.DescriptionAction

	if trial == nil {
		for _, da := range descriptions {
			if da.TypeTrialID == nil {
				out = append(out, da)
			}
		}
		return out
	}

	kind := domain.ParseTrialKind(trial.TypeTrial.Name)
	for _, da := range descriptions {
		if da.TypeTrialID == nil {
			out = append(out, da)
			continue
		}
		if *da.TypeTrialID == trial.TypeTrialID {
			out = append(out, da)
			continue
		}
		// Catalog sharing only links the named families; two unrelated
		// "other" types never share.
		if kind != domain.KindOther && da.TypeTrial != nil && kind.SharesActionCatalog(domain.ParseTrialKind(da.TypeTrial.Name)) {
			out = append(out, da)
		}
	}
	return out
}

package mocks

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

// Trials generates count trials obeying the validation rules: distinct
// parties, category present unless the type is pago por consignación, and
// incidentes de desacato only against a Tutela already in existing (sharing
// its number and arriving later). ARCHIVADO trials get a close date after
// arrival.
func Trials(r *rand.Rand, people []domain.Person, types []domain.TypeTrial, categories []domain.Category, entryTypes []domain.EntryType, count int, existing []domain.Trial) ([]domain.Trial, error) {
	if len(people) < 2 {
		return nil, errors.New("mocks: need at least two people to generate trials")
	}
	if len(types) == 0 {
		return nil, errors.New("mocks: need trial types to generate trials")
	}
	if len(entryTypes) == 0 {
		return nil, errors.New("mocks: need entry types to generate trials")
	}

	statuses := []domain.Status{
		domain.StatusPrimeraInstancia,
		domain.StatusSegundaInstancia,
		domain.StatusArchivado,
	}

	var tutelaType, desacatoType *domain.TypeTrial
	var otherTypes []domain.TypeTrial
	for i := range types {
		switch domain.ParseTrialKind(types[i].Name) {
		case domain.KindTutela:
			tutelaType = &types[i]
		case domain.KindIncidenteDesacato:
			desacatoType = &types[i]
		default:
			otherTypes = append(otherTypes, types[i])
		}
	}

	var tutelas []domain.Trial
	if tutelaType != nil {
		for _, t := range existing {
			if t.TypeTrialID == tutelaType.ID {
				tutelas = append(tutelas, t)
			}
		}
	}

	byType := map[string][]domain.Category{}
	for _, c := range categories {
		byType[c.TypeTrialID] = append(byType[c.TypeTrialID], c)
	}

	usedNumbers := map[string]bool{}
	for _, t := range existing {
		usedNumbers[t.Number] = true
	}

	out := make([]domain.Trial, 0, count)
	for i := 0; i < count; i++ {
		plaintiff := people[r.Intn(len(people))]
		defendant := people[r.Intn(len(people))]
		for defendant.ID == plaintiff.ID {
			defendant = people[r.Intn(len(people))]
		}

		var (
			tt         domain.TypeTrial
			categoryID *string
			number     string
			arrival    time.Time
		)

		if desacatoType != nil && len(tutelas) > 0 && r.Float64() < 0.2 {
			base := tutelas[r.Intn(len(tutelas))]
			tt = *desacatoType
			number = base.Number
			// Desacato shares the Tutela category family.
			if cats := byType[tutelaType.ID]; len(cats) > 0 {
				c := cats[r.Intn(len(cats))]
				categoryID = &c.ID
			}
			arrival = base.ArrivalDate.AddDate(0, 0, 30+r.Intn(150))
		} else {
			if tutelaType != nil && r.Float64() < 0.3 {
				tt = *tutelaType
			} else if len(otherTypes) > 0 {
				tt = otherTypes[r.Intn(len(otherTypes))]
			} else if tutelaType != nil {
				tt = *tutelaType
			} else {
				continue
			}

			kind := domain.ParseTrialKind(tt.Name)
			if kind.RequiresCategory() {
				cats := byType[tt.ID]
				if len(cats) == 0 {
					// No category available: skip, the service would reject it.
					continue
				}
				c := cats[r.Intn(len(cats))]
				categoryID = &c.ID
			}

			for {
				number = fmt.Sprintf("%d-%05d", 2020+r.Intn(5), 1+r.Intn(99999))
				if !usedNumbers[number] {
					break
				}
			}
			arrival = time.Date(2020+r.Intn(5), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC)
		}
		usedNumbers[number] = true

		status := statuses[r.Intn(len(statuses))]
		var closeDate *time.Time
		if status == domain.StatusArchivado {
			d := arrival.AddDate(0, 0, 30+r.Intn(365))
			closeDate = &d
		}

		tr := domain.Trial{
			ID:          uuid.NewString(),
			Number:      number,
			TypeTrialID: tt.ID,
			CategoryID:  categoryID,
			PlaintiffID: plaintiff.ID,
			DefendantID: defendant.ID,
			EntryTypeID: entryTypes[r.Intn(len(entryTypes))].ID,
			ArrivalDate: arrival,
			CloseDate:   closeDate,
			Status:      status,
		}
		if tutelaType != nil && tt.ID == tutelaType.ID {
			tutelas = append(tutelas, tr)
		}
		out = append(out, tr)
	}
	return out, nil
}

package mocks

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

func testCatalog() (types []domain.TypeTrial, categories []domain.Category, entryTypes []domain.EntryType) {
	types = []domain.TypeTrial{
		{ID: uuid.NewString(), Name: "Tutela"},
		{ID: uuid.NewString(), Name: "Incidente de desacato"},
		{ID: uuid.NewString(), Name: "Ordinario"},
		{ID: uuid.NewString(), Name: "Ejecutivo"},
		{ID: uuid.NewString(), Name: "Pagos por consignación"},
	}
	categories = []domain.Category{
		{ID: uuid.NewString(), Description: "Salud", TypeTrialID: types[0].ID},
		{ID: uuid.NewString(), Description: "Despido", TypeTrialID: types[2].ID},
		{ID: uuid.NewString(), Description: "Cobro", TypeTrialID: types[3].ID},
	}
	entryTypes = []domain.EntryType{
		{ID: uuid.NewString(), Description: "Oficio"},
		{ID: uuid.NewString(), Description: "Demanda"},
	}
	return
}

func TestPeople_UniqueDocuments(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	people := People(r, 50)
	if len(people) != 50 {
		t.Fatalf("generated %d people, want 50", len(people))
	}
	seen := map[string]bool{}
	for _, p := range people {
		if p.Name == "" || p.Document == "" || p.ID == "" {
			t.Fatalf("incomplete person: %+v", p)
		}
		if p.DocumentType != "Cédula" && p.DocumentType != "NIT" {
			t.Fatalf("unexpected document type: %q", p.DocumentType)
		}
		if seen[p.Document] {
			t.Fatalf("duplicate document %s", p.Document)
		}
		seen[p.Document] = true
	}
}

func TestTrials_RespectBusinessRules(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	types, categories, entryTypes := testCatalog()
	people := People(r, 10)

	trials, err := Trials(r, people, types, categories, entryTypes, 100, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(trials) == 0 {
		t.Fatal("no trials generated")
	}

	kindOf := map[string]domain.TrialKind{}
	for _, tt := range types {
		kindOf[tt.ID] = domain.ParseTrialKind(tt.Name)
	}
	tutelaNumbers := map[string]bool{}
	for _, tr := range trials {
		if kindOf[tr.TypeTrialID] == domain.KindTutela {
			tutelaNumbers[tr.Number] = true
		}
	}

	for _, tr := range trials {
		if tr.PlaintiffID == tr.DefendantID {
			t.Fatalf("trial %s has identical parties", tr.Number)
		}
		kind := kindOf[tr.TypeTrialID]
		if kind.RequiresCategory() && tr.CategoryID == nil {
			t.Fatalf("trial %s (%s) missing category", tr.Number, kind)
		}
		if !kind.RequiresCategory() && tr.CategoryID != nil {
			t.Fatalf("pago por consignación trial %s carries a category", tr.Number)
		}
		if kind == domain.KindIncidenteDesacato {
			if !tutelaNumbers[tr.Number] {
				t.Fatalf("desacato %s has no backing tutela", tr.Number)
			}
		}
		if tr.Status == domain.StatusArchivado {
			if tr.CloseDate == nil || !tr.CloseDate.After(tr.ArrivalDate) {
				t.Fatalf("archived trial %s has bad close date %v", tr.Number, tr.CloseDate)
			}
		} else if tr.CloseDate != nil {
			t.Fatalf("open trial %s carries a close date", tr.Number)
		}
	}
}

func TestTrials_TooFewPeople(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	types, categories, entryTypes := testCatalog()
	if _, err := Trials(r, People(r, 1), types, categories, entryTypes, 5, nil); err == nil {
		t.Fatal("expected error with a single person")
	}
}

func TestActions_VocabularyFollowsFamilies(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	types, categories, entryTypes := testCatalog()
	tutela, ordinario, ejecutivo := types[0], types[2], types[3]
	people := People(r, 6)

	trials, err := Trials(r, people, types, categories, entryTypes, 40, nil)
	if err != nil {
		t.Fatalf("generate trials: %v", err)
	}
	// Generators leave relations empty; the vocabulary filter needs them.
	byID := map[string]domain.TypeTrial{}
	for _, tt := range types {
		byID[tt.ID] = tt
	}
	for i := range trials {
		trials[i].TypeTrial = byID[trials[i].TypeTrialID]
	}

	ta := uuid.NewString()
	general := domain.DescriptionAction{ID: uuid.NewString(), Description: "Notificación", TypeActionID: ta}
	forOrdinario := domain.DescriptionAction{ID: uuid.NewString(), Description: "Audiencia", TypeActionID: ta, TypeTrialID: &ordinario.ID, TypeTrial: &ordinario}
	forEjecutivo := domain.DescriptionAction{ID: uuid.NewString(), Description: "Mandamiento", TypeActionID: ta, TypeTrialID: &ejecutivo.ID, TypeTrial: &ejecutivo}
	forTutela := domain.DescriptionAction{ID: uuid.NewString(), Description: "Fallo", TypeActionID: ta, TypeTrialID: &tutela.ID, TypeTrial: &tutela}
	descriptions := []domain.DescriptionAction{general, forOrdinario, forEjecutivo, forTutela}

	actions, err := Actions(r, trials, descriptions, 200)
	if err != nil {
		t.Fatalf("generate actions: %v", err)
	}
	if len(actions) != 200 {
		t.Fatalf("generated %d actions, want 200", len(actions))
	}

	trialByID := map[string]domain.Trial{}
	for _, tr := range trials {
		trialByID[tr.ID] = tr
	}
	descByID := map[string]domain.DescriptionAction{}
	for _, da := range descriptions {
		descByID[da.ID] = da
	}

	for _, a := range actions {
		da := descByID[a.DescriptionActionID]
		if a.TrialID == nil {
			if da.TypeTrialID != nil {
				t.Fatalf("office-wide action got scoped description %q", da.Description)
			}
			continue
		}
		tr := trialByID[*a.TrialID]
		if da.TypeTrialID == nil {
			continue
		}
		kind := domain.ParseTrialKind(tr.TypeTrial.Name)
		daKind := domain.ParseTrialKind(da.TypeTrial.Name)
		if !kind.SharesActionCatalog(daKind) {
			t.Fatalf("trial kind %s got description scoped to %s", kind, daKind)
		}
	}
}

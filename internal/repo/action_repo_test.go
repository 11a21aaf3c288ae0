package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

func newActionRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("action_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mustDescriptionAction(t *testing.T, db *gorm.DB, description, typeActionID string, typeTrialID *string) domain.DescriptionAction {
	t.Helper()
	da := domain.DescriptionAction{
		ID:           uuid.NewString(),
		Description:  description,
		TypeActionID: typeActionID,
		TypeTrialID:  typeTrialID,
	}
	if err := db.Create(&da).Error; err != nil {
		t.Fatalf("seed description action: %v", err)
	}
	return da
}

func mustAction(t *testing.T, db *gorm.DB, descriptionActionID string, trialID *string, at time.Time) domain.Action {
	t.Helper()
	a := domain.Action{
		ID:                  uuid.NewString(),
		DescriptionActionID: descriptionActionID,
		Date:                at,
		TrialID:             trialID,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed action: %v", err)
	}
	return a
}

func TestGetAction_PreloadsClassification(t *testing.T) {
	db := newActionRepoDB(t)
	ta := mustTypeAction(t, db, "Auto")
	da := mustDescriptionAction(t, db, "Auto admisorio", ta.ID, nil)
	a := mustAction(t, db, da.ID, nil, time.Now().UTC())

	got, err := GetAction(context.Background(), db, a.ID)
	if err != nil {
		t.Fatalf("GetAction: %v", err)
	}
	if got.DescriptionAction.Description != "Auto admisorio" || got.DescriptionAction.TypeAction.Description != "Auto" {
		t.Fatalf("classification not preloaded: %+v", got)
	}

	if _, err := GetAction(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAndDeleteAction_NotFound(t *testing.T) {
	db := newActionRepoDB(t)
	err := UpdateAction(context.Background(), db, &domain.Action{ID: "missing", Date: time.Now().UTC()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := DeleteAction(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestSearchActions_FiltersAndPreloads(t *testing.T) {
	db := newActionRepoDB(t)
	tt := mustTypeTrial(t, db, "Ejecutivo")
	cat := mustCategory(t, db, "Cobro", tt.ID)
	et := mustEntryType(t, db, "Demanda")
	ana := mustPerson(t, db, "Ana", "100")
	luis := mustPerson(t, db, "Luis", "200")
	tr := mustTrial(t, db, tt.ID, cat.ID, ana.ID, luis.ID, et.ID, "E-500", time.Now().UTC())

	ta := mustTypeAction(t, db, "Auto")
	da := mustDescriptionAction(t, db, "Mandamiento de pago", ta.ID, &tt.ID)

	early := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	a1 := mustAction(t, db, da.ID, &tr.ID, early)
	a2 := mustAction(t, db, da.ID, nil, late)

	ctx := context.Background()

	// Term matches the trial number.
	got, err := SearchActions(ctx, db, ActionFilter{Term: "E-500"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != a1.ID {
		t.Fatalf("term by trial number: %+v", got)
	}
	if got[0].Trial == nil || got[0].Trial.TypeTrial.Name != "Ejecutivo" {
		t.Fatalf("owning trial not preloaded: %+v", got[0])
	}

	// Term matches the description wording.
	got, err = SearchActions(ctx, db, ActionFilter{Term: "Mandamiento"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("term by description: %+v", got)
	}

	// Inclusive date bounds.
	got, err = SearchActions(ctx, db, ActionFilter{From: &late, To: &late})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != a2.ID {
		t.Fatalf("date bounds: %+v", got)
	}

	// Trial filter.
	got, err = SearchActions(ctx, db, ActionFilter{TrialID: tr.ID})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != a1.ID {
		t.Fatalf("trial filter: %+v", got)
	}
}

func TestCountActionsByDescriptionAction(t *testing.T) {
	db := newActionRepoDB(t)
	ta := mustTypeAction(t, db, "Oficio")
	used := mustDescriptionAction(t, db, "Notificación", ta.ID, nil)
	unused := mustDescriptionAction(t, db, "Requerimiento", ta.ID, nil)
	mustAction(t, db, used.ID, nil, time.Now().UTC())
	mustAction(t, db, used.ID, nil, time.Now().UTC())

	n, err := CountActionsByDescriptionAction(context.Background(), db, used.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
	n, err = CountActionsByDescriptionAction(context.Background(), db, unused.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}
}

func TestFindDescriptionActionByFields(t *testing.T) {
	db := newActionRepoDB(t)
	tt := mustTypeTrial(t, db, "Tutela")
	ta := mustTypeAction(t, db, "Auto")
	general := mustDescriptionAction(t, db, "Auto admisorio", ta.ID, nil)
	scoped := mustDescriptionAction(t, db, "Auto admisorio", ta.ID, &tt.ID)

	ctx := context.Background()

	// NULL scope matches only the general entry, case-insensitively.
	got, err := FindDescriptionActionByFields(ctx, db, "  AUTO ADMISORIO ", ta.ID, nil, "")
	if err != nil {
		t.Fatalf("find general: %v", err)
	}
	if got.ID != general.ID {
		t.Fatalf("found wrong entry: %s", got.ID)
	}

	got, err = FindDescriptionActionByFields(ctx, db, "auto admisorio", ta.ID, &tt.ID, "")
	if err != nil {
		t.Fatalf("find scoped: %v", err)
	}
	if got.ID != scoped.ID {
		t.Fatalf("found wrong entry: %s", got.ID)
	}

	// Excluding the only match yields not found.
	if _, err := FindDescriptionActionByFields(ctx, db, "auto admisorio", ta.ID, nil, general.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListDescriptionActions_ScopeSemantics(t *testing.T) {
	db := newActionRepoDB(t)
	tutela := mustTypeTrial(t, db, "Tutela")
	ejecutivo := mustTypeTrial(t, db, "Ejecutivo")
	ta := mustTypeAction(t, db, "Auto")
	general := mustDescriptionAction(t, db, "Notificación", ta.ID, nil)
	forTutela := mustDescriptionAction(t, db, "Auto admisorio", ta.ID, &tutela.ID)
	mustDescriptionAction(t, db, "Mandamiento de pago", ta.ID, &ejecutivo.ID)

	ctx := context.Background()

	// nil scope: everything.
	all, err := ListDescriptionActions(ctx, db, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}

	// Empty non-nil scope: general entries only.
	gen, err := ListDescriptionActions(ctx, db, []string{})
	if err != nil {
		t.Fatalf("list general: %v", err)
	}
	if len(gen) != 1 || gen[0].ID != general.ID {
		t.Fatalf("general only: %+v", gen)
	}

	// Scoped: general plus the named types.
	scoped, err := ListDescriptionActions(ctx, db, []string{tutela.ID})
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("scoped = %d, want 2", len(scoped))
	}
	ids := map[string]bool{scoped[0].ID: true, scoped[1].ID: true}
	if !ids[general.ID] || !ids[forTutela.ID] {
		t.Fatalf("scoped entries wrong: %+v", scoped)
	}
}

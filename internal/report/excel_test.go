package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/services"
)

func sampleReport() *services.Report {
	return &services.Report{
		TotalTrials:       2,
		TotalPeople:       3,
		TotalActions:      4,
		TotalDescriptions: 5,
		TrialsByType: []services.NameCount{
			{Name: "Ejecutivo", Value: 1},
			{Name: "Tutela", Value: 1},
		},
		PeopleByDocumentType: []services.NameCount{{Name: "CC", Value: 3}},
		ActionsByType:        []services.NameCount{{Name: "Auto", Value: 4}},
		Trials: []domain.Trial{
			{
				Number:      "E-1",
				TypeTrial:   domain.TypeTrial{Name: "Ejecutivo"},
				Plaintiff:   domain.Person{Name: "Ana"},
				Defendant:   domain.Person{Name: "Luis"},
				ArrivalDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
				Status:      domain.StatusPrimeraInstancia,
			},
		},
		EntryTypes:       []domain.EntryType{{ID: "et1", Description: "Oficio"}},
		AutoDescriptions: []domain.DescriptionAction{{ID: "da1", Description: "Mandamiento de pago"}},
		Matrix: []services.MatrixRow{
			{
				CategoryID:       "c1",
				CategoryName:     "Cobro",
				TypeTrialName:    "Ejecutivo",
				EntryTypes:       map[string]int{"et1": 1},
				AutoDescriptions: map[string]int{"da1": 2},
				TotalSentencias:  1,
			},
		},
		TutelaEntryTypes:            []domain.EntryType{{ID: "et1", Description: "Oficio"}},
		TutelaAutoDescriptions:      []domain.DescriptionAction{{ID: "da2", Description: "Auto admisorio"}},
		TutelaSentenciaDescriptions: []domain.DescriptionAction{{ID: "da3", Description: "Fallo"}},
		TutelaMatrix: []services.MatrixRow{
			{
				CategoryID:            "c2",
				CategoryName:          "Salud",
				TypeTrialName:         "Tutela",
				EntryTypes:            map[string]int{"et1": 1},
				AutoDescriptions:      map[string]int{"da2": 0},
				SentenciaDescriptions: map[string]int{"da3": 3},
				TotalSentencias:       3,
			},
		},
	}
}

func TestGenerateStatisticsExcel_Sheets(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	raw, err := GenerateStatisticsExcel(sampleReport(), &from, &to)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{
		"Matriz Categorías",
		"Matriz Tutelas",
		"Resumen General",
		"Procesos por Tipo",
		"Personas por Tipo",
		"Actuaciones por Tipo",
		"Detalle de Procesos",
	}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sheet[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Primary matrix: row label and sentencia total in the last column.
	label, err := f.GetCellValue("Matriz Categorías", "A5")
	if err != nil {
		t.Fatalf("read label: %v", err)
	}
	if label != "Ejecutivo - Cobro" {
		t.Fatalf("matrix label = %q", label)
	}
	// Columns: A label, B entry type, C auto description, D total.
	total, err := f.GetCellValue("Matriz Categorías", "D5")
	if err != nil {
		t.Fatalf("read total: %v", err)
	}
	if total != "1" {
		t.Fatalf("totalSentencias cell = %q, want 1", total)
	}

	// Tutela matrix adds the per-description sentencia column before the
	// total: A label, B entry, C auto, D sentencia breakout, E total.
	cell, err := f.GetCellValue("Matriz Tutelas", "D5")
	if err != nil {
		t.Fatalf("read tutela sentencia: %v", err)
	}
	if cell != "3" {
		t.Fatalf("tutela sentencia cell = %q, want 3", cell)
	}

	// Summary carries the period label.
	period, err := f.GetCellValue("Resumen General", "B2")
	if err != nil {
		t.Fatalf("read period: %v", err)
	}
	if period != "Del 01/05/2024 al 31/05/2024" {
		t.Fatalf("period = %q", period)
	}

	// Tally sheet footer.
	totalCell, err := f.GetCellValue("Procesos por Tipo", "B4")
	if err != nil {
		t.Fatalf("read tally total: %v", err)
	}
	if totalCell != "2" {
		t.Fatalf("tally total = %q, want 2", totalCell)
	}
}

func TestGenerateStatisticsExcel_OmitsEmptySheets(t *testing.T) {
	rep := &services.Report{}
	raw, err := GenerateStatisticsExcel(rep, nil, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		switch name {
		case "Procesos por Tipo", "Personas por Tipo", "Actuaciones por Tipo", "Detalle de Procesos":
			t.Fatalf("empty tally sheet %q should be omitted", name)
		}
	}

	period, err := f.GetCellValue("Resumen General", "B2")
	if err != nil {
		t.Fatalf("read period: %v", err)
	}
	if period != "Del N/A al N/A" {
		t.Fatalf("open period = %q", period)
	}
}

// Package services – StatisticsService
//
// This file implements the statistics aggregator: flat tallies plus two
// category pivot matrices computed over a date-filtered snapshot of trials
// and actions. The aggregator is stateless and pure given a consistent
// snapshot; it holds no state between calls and takes no locks.
//
// The two matrices share one structure: rows are categories of a trial-type
// family, columns are every entry type, every "Auto"-classified description
// applicable to the family, and sentencia counts. The primary matrix covers
// the Ejecutivo/Ordinario family and collapses sentencias into a single
// total column; the secondary matrix covers the Tutela family (incidente de
// desacato shares Tutela's categories, so it gets no rows of its own) and
// breaks sentencias out per description. The asymmetry is an intentional
// reporting rule, not an accident.
package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/repo"
)

// noTypeLabel is the fallback bucket when a relation needed for a grouping is
// missing.
const noTypeLabel = "Sin tipo"

// NameCount is one {name, value} bucket of a flat grouping.
type NameCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MatrixRow is one category row of a pivot matrix. Cell maps are pre-seeded
// with zeros for every column before any fact is scanned, so missing data
// reads as 0, never as an absent key.
type MatrixRow struct {
	CategoryID    string `json:"categoryId"`
	CategoryName  string `json:"categoryName"`
	TypeTrialName string `json:"typeTrialName"`

	// EntryTypes counts filtered trials per entry-type id.
	EntryTypes map[string]int `json:"entryTypes"`
	// AutoDescriptions counts filtered actions per Auto-classified
	// description-action id.
	AutoDescriptions map[string]int `json:"autoDescriptions"`
	// SentenciaDescriptions counts filtered actions per Sentencia-classified
	// description-action id. Populated for the Tutela matrix only.
	SentenciaDescriptions map[string]int `json:"sentenciaDescriptions,omitempty"`
	// TotalSentencias counts every Sentencia-classified action in the row's
	// scope, regardless of description.
	TotalSentencias int `json:"totalSentencias"`
}

// Report is the statistics structure owed to external consumers (the API
// response and the spreadsheet renderer). Its shape is stable across calls
// with the same date range.
type Report struct {
	TotalTrials       int `json:"totalTrials"`
	TotalPeople       int `json:"totalPeople"`
	TotalActions      int `json:"totalActions"`
	TotalDescriptions int `json:"totalDescriptions"`

	TrialsByType         []NameCount `json:"trialsByType"`
	PeopleByDocumentType []NameCount `json:"peopleByDocumentType"`
	ActionsByType        []NameCount `json:"actionsByType"`

	// Trials is the full filtered trial list, for the detail sheet.
	Trials []domain.Trial `json:"trials"`

	// Primary matrix (Ejecutivo/Ordinario family) and its axis labels.
	Matrix           []MatrixRow                `json:"matrixData"`
	EntryTypes       []domain.EntryType         `json:"entryTypes"`
	AutoDescriptions []domain.DescriptionAction `json:"autoDescriptions"`

	// Secondary matrix (Tutela family) and its axis labels.
	TutelaMatrix                []MatrixRow                `json:"tutelaMatrixData"`
	TutelaEntryTypes            []domain.EntryType         `json:"tutelaEntryTypes"`
	TutelaAutoDescriptions      []domain.DescriptionAction `json:"tutelaAutoDescriptions"`
	TutelaSentenciaDescriptions []domain.DescriptionAction `json:"tutelaSentenciaDescriptions"`
}

// StatisticsService computes the Report.
type StatisticsService struct {
	// DB is the GORM handle used for all reads.
	DB *gorm.DB
	// Registry resolves the family anchor types by name.
	Registry TypeRegistry
}

// NewStatisticsService constructs a StatisticsService backed by the given
// database.
func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{DB: db, Registry: &DBTypeRegistry{DB: db}}
}

// Compute aggregates statistics for the inclusive [startDate, endDate]
// window. A nil bound is open. The end bound is extended to the end of its
// day so a same-day range covers the whole day. Trials are filtered by
// arrival date and actions by their own date, independently: actions are not
// restricted to trials inside the trial window.
func (s *StatisticsService) Compute(ctx context.Context, startDate, endDate *time.Time) (*Report, error) {
	var from, to *time.Time
	if startDate != nil {
		f := *startDate
		from = &f
	}
	if endDate != nil {
		t := endOfDay(*endDate)
		to = &t
	}

	trials, err := repo.SearchTrials(ctx, s.DB, repo.TrialFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	people, err := repo.ListPeople(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	actions, err := repo.SearchActions(ctx, s.DB, repo.ActionFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	descriptions, err := repo.ListDescriptionActions(ctx, s.DB, nil)
	if err != nil {
		return nil, err
	}
	entryTypes, err := repo.ListEntryTypes(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		TotalTrials:       len(trials),
		TotalPeople:       len(people),
		TotalActions:      len(actions),
		TotalDescriptions: len(descriptions),

		TrialsByType: groupCount(trials, func(t domain.Trial) string {
			if t.TypeTrial.Name != "" {
				return t.TypeTrial.Name
			}
			return noTypeLabel
		}),
		PeopleByDocumentType: groupCount(people, func(p domain.Person) string {
			if p.DocumentType != "" {
				return p.DocumentType
			}
			return noTypeLabel
		}),
		ActionsByType: groupCount(actions, func(a domain.Action) string {
			if d := a.DescriptionAction.TypeAction.Description; d != "" {
				return d
			}
			return noTypeLabel
		}),

		Trials:           trials,
		EntryTypes:       entryTypes,
		TutelaEntryTypes: entryTypes,
	}

	if err := s.buildPrimaryMatrix(ctx, rep, trials, actions, descriptions); err != nil {
		return nil, err
	}
	if err := s.buildTutelaMatrix(ctx, rep, trials, actions, descriptions); err != nil {
		return nil, err
	}
	return rep, nil
}

// buildPrimaryMatrix fills the Ejecutivo/Ordinario matrix. Ejecutivo rows
// take priority when a category id appears in both family sets; sorting puts
// Ordinario-family rows first, then Ejecutivo, alphabetical by category
// description within each family.
func (s *StatisticsService) buildPrimaryMatrix(ctx context.Context, rep *Report, trials []domain.Trial, actions []domain.Action, descriptions []domain.DescriptionAction) error {
	ejecutivoCats, err := s.familyCategories(ctx, "Ejecutivo")
	if err != nil {
		return err
	}
	ordinarioCats, err := s.familyCategories(ctx, "Ordinario")
	if err != nil {
		return err
	}

	rep.AutoDescriptions = filterDescriptions(descriptions, isAuto, domain.KindOrdinario, domain.KindEjecutivo)

	rows := map[string]*MatrixRow{}
	addRows := func(cats []domain.Category, family string) {
		for _, c := range cats {
			if _, ok := rows[c.ID]; ok {
				continue
			}
			rows[c.ID] = newMatrixRow(c, family, rep.EntryTypes, rep.AutoDescriptions, nil)
		}
	}
	addRows(ejecutivoCats, "Ejecutivo")
	addRows(ordinarioCats, "Ordinario")

	inFamily := func(kind domain.TrialKind) bool {
		return kind == domain.KindOrdinario || kind == domain.KindEjecutivo
	}
	scanTrialEntryTypes(rows, trials, inFamily)
	scanActions(rows, actions, false)

	rep.Matrix = sortedRows(rows, func(a, b *MatrixRow) bool {
		if a.TypeTrialName != b.TypeTrialName {
			// Ordinario sorts before Ejecutivo by business rule, not by name.
			return a.TypeTrialName == "Ordinario"
		}
		return a.CategoryName < b.CategoryName
	})
	return nil
}

// buildTutelaMatrix fills the Tutela matrix. Incidente de desacato trials
// count into Tutela's rows through their shared categories; sentencias are
// broken out per description instead of collapsed.
func (s *StatisticsService) buildTutelaMatrix(ctx context.Context, rep *Report, trials []domain.Trial, actions []domain.Action, descriptions []domain.DescriptionAction) error {
	tutelaCats, err := s.familyCategories(ctx, "Tutela")
	if err != nil {
		return err
	}

	rep.TutelaAutoDescriptions = filterDescriptions(descriptions, isAuto, domain.KindTutela, domain.KindIncidenteDesacato)
	rep.TutelaSentenciaDescriptions = filterDescriptions(descriptions, isSentencia, domain.KindTutela, domain.KindIncidenteDesacato)

	rows := map[string]*MatrixRow{}
	for _, c := range tutelaCats {
		rows[c.ID] = newMatrixRow(c, "Tutela", rep.TutelaEntryTypes, rep.TutelaAutoDescriptions, rep.TutelaSentenciaDescriptions)
	}

	inFamily := func(kind domain.TrialKind) bool {
		return kind == domain.KindTutela || kind == domain.KindIncidenteDesacato
	}
	scanTrialEntryTypes(rows, trials, inFamily)
	scanActions(rows, actions, true)

	rep.TutelaMatrix = sortedRows(rows, func(a, b *MatrixRow) bool {
		return a.CategoryName < b.CategoryName
	})
	return nil
}

// familyCategories resolves a family anchor type by name and returns its
// categories. A missing type yields no rows rather than an error.
func (s *StatisticsService) familyCategories(ctx context.Context, typeName string) ([]domain.Category, error) {
	tt, err := s.Registry.ByName(ctx, typeName, false)
	if err != nil {
		return nil, err
	}
	if tt == nil {
		return nil, nil
	}
	return repo.ListCategoriesByTypeTrial(ctx, s.DB, tt.ID)
}

// newMatrixRow builds a zero-filled row: every column key pre-seeded so the
// scan phase only ever increments existing cells.
func newMatrixRow(c domain.Category, family string, entryTypes []domain.EntryType, autos, sentencias []domain.DescriptionAction) *MatrixRow {
	row := &MatrixRow{
		CategoryID:       c.ID,
		CategoryName:     c.Description,
		TypeTrialName:    family,
		EntryTypes:       make(map[string]int, len(entryTypes)),
		AutoDescriptions: make(map[string]int, len(autos)),
	}
	for _, et := range entryTypes {
		row.EntryTypes[et.ID] = 0
	}
	for _, da := range autos {
		row.AutoDescriptions[da.ID] = 0
	}
	if sentencias != nil {
		row.SentenciaDescriptions = make(map[string]int, len(sentencias))
		for _, da := range sentencias {
			row.SentenciaDescriptions[da.ID] = 0
		}
	}
	return row
}

// scanTrialEntryTypes counts each in-family, in-window trial into its
// category row's entry-type cell.
func scanTrialEntryTypes(rows map[string]*MatrixRow, trials []domain.Trial, inFamily func(domain.TrialKind) bool) {
	for _, t := range trials {
		if !inFamily(domain.ParseTrialKind(t.TypeTrial.Name)) {
			continue
		}
		if t.CategoryID == nil {
			continue
		}
		row, ok := rows[*t.CategoryID]
		if !ok {
			continue
		}
		if _, ok := row.EntryTypes[t.EntryTypeID]; ok {
			row.EntryTypes[t.EntryTypeID]++
		}
	}
}

// scanActions counts each filtered action into its trial's category row.
// Auto-classified actions land in their description's column; sentencias go
// to the per-description column when the matrix breaks them out, and always
// into the row total.
func scanActions(rows map[string]*MatrixRow, actions []domain.Action, perDescriptionSentencias bool) {
	for _, a := range actions {
		if a.TrialID == nil || a.Trial == nil || a.Trial.CategoryID == nil {
			continue
		}
		row, ok := rows[*a.Trial.CategoryID]
		if !ok {
			continue
		}
		switch {
		case isAuto(a.DescriptionAction):
			if _, ok := row.AutoDescriptions[a.DescriptionActionID]; ok {
				row.AutoDescriptions[a.DescriptionActionID]++
			}
		case isSentencia(a.DescriptionAction):
			if perDescriptionSentencias {
				if _, ok := row.SentenciaDescriptions[a.DescriptionActionID]; ok {
					row.SentenciaDescriptions[a.DescriptionActionID]++
				}
			}
			row.TotalSentencias++
		}
	}
}

// filterDescriptions keeps catalog entries matching classify whose trial-type
// scope is general (nil) or one of the given kinds.
func filterDescriptions(descriptions []domain.DescriptionAction, classify func(domain.DescriptionAction) bool, kinds ...domain.TrialKind) []domain.DescriptionAction {
	out := make([]domain.DescriptionAction, 0)
	for _, da := range descriptions {
		if !classify(da) {
			continue
		}
		if da.TypeTrialID == nil {
			out = append(out, da)
			continue
		}
		if da.TypeTrial == nil {
			continue
		}
		kind := domain.ParseTrialKind(da.TypeTrial.Name)
		for _, k := range kinds {
			if kind == k {
				out = append(out, da)
				break
			}
		}
	}
	return out
}

// isAuto classifies a catalog entry by substring match on its parent action
// type, so "Auto Interlocutorio" qualifies.
func isAuto(da domain.DescriptionAction) bool {
	return strings.Contains(strings.ToLower(da.TypeAction.Description), "auto")
}

// isSentencia is the sentencia counterpart of isAuto.
func isSentencia(da domain.DescriptionAction) bool {
	return strings.Contains(strings.ToLower(da.TypeAction.Description), "sentencia")
}

// groupCount tallies items into {name, value} buckets sorted by name.
func groupCount[T any](items []T, key func(T) string) []NameCount {
	counts := map[string]int{}
	for _, it := range items {
		counts[key(it)]++
	}
	out := make([]NameCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, NameCount{Name: name, Value: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// sortedRows flattens a row map into a deterministically ordered slice.
func sortedRows(rows map[string]*MatrixRow, less func(a, b *MatrixRow) bool) []MatrixRow {
	out := make([]MatrixRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// endOfDay extends t to the last instant of its calendar day so an inclusive
// end bound covers the whole day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

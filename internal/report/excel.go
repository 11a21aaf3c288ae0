// Package report renders a statistics Report into an Excel workbook.
//
// The workbook carries one sheet per view: the two category matrices, the
// general summary, one sheet per flat tally, and the trial detail list.
// Sheets for empty tallies are omitted.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/services"
)

const (
	sheetMatrix       = "Matriz Categorías"
	sheetTutelaMatrix = "Matriz Tutelas"
	sheetSummary      = "Resumen General"
	sheetTrialsByType = "Procesos por Tipo"
	sheetPeopleByType = "Personas por Tipo"
	sheetActionsBy    = "Actuaciones por Tipo"
	sheetTrialDetail  = "Detalle de Procesos"
)

// header fill colors per sheet family.
const (
	colorHeaderBlue   = "4472C4"
	colorHeaderGreen  = "70AD47"
	colorHeaderPurple = "7030A0"
	colorTotalBlue    = "D9E1F2"
	colorTotalGreen   = "E2EFDA"
	colorTotalPurple  = "E7D9F2"
)

// GenerateStatisticsExcel renders rep into an xlsx workbook and returns its
// bytes. startDate and endDate only label the report period; nil prints as
// "N/A".
func GenerateStatisticsExcel(rep *services.Report, startDate, endDate *time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	dateRange := fmt.Sprintf("Del %s al %s", formatDate(startDate), formatDate(endDate))

	if err := f.SetSheetName("Sheet1", sheetMatrix); err != nil {
		return nil, err
	}
	if err := writeMatrixSheet(f, sheetMatrix, "REPORTE DE ESTADÍSTICAS - MATRIZ DE CATEGORÍAS", dateRange,
		rep.Matrix, rep.EntryTypes, rep.AutoDescriptions, nil); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetTutelaMatrix); err != nil {
		return nil, err
	}
	if err := writeMatrixSheet(f, sheetTutelaMatrix, "REPORTE DE ESTADÍSTICAS - MATRIZ DE TUTELAS", dateRange,
		rep.TutelaMatrix, rep.TutelaEntryTypes, rep.TutelaAutoDescriptions, rep.TutelaSentenciaDescriptions); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, rep, dateRange); err != nil {
		return nil, err
	}
	if err := writeTallySheet(f, sheetTrialsByType, "Tipo de Proceso", rep.TrialsByType, rep.TotalTrials, colorHeaderBlue, colorTotalBlue); err != nil {
		return nil, err
	}
	if err := writeTallySheet(f, sheetPeopleByType, "Tipo de Documento", rep.PeopleByDocumentType, rep.TotalPeople, colorHeaderGreen, colorTotalGreen); err != nil {
		return nil, err
	}
	if err := writeTallySheet(f, sheetActionsBy, "Tipo de Actuación", rep.ActionsByType, rep.TotalActions, colorHeaderPurple, colorTotalPurple); err != nil {
		return nil, err
	}
	if err := writeTrialDetailSheet(f, rep.Trials); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeMatrixSheet lays out one category matrix: title, period, a header row
// of entry types plus auto descriptions (plus per-description sentencias when
// given), then one row per category. The header row and first column stay
// frozen.
func writeMatrixSheet(f *excelize.File, sheet, title, dateRange string, rows []services.MatrixRow, entryTypes []domain.EntryType, autos, sentencias []domain.DescriptionAction) error {
	header := []any{"Categoría"}
	for _, et := range entryTypes {
		header = append(header, et.Description)
	}
	for _, da := range autos {
		header = append(header, da.Description)
	}
	for _, da := range sentencias {
		header = append(header, "Sentencia: "+da.Description)
	}
	header = append(header, "Total Sentencias")

	if err := f.SetSheetRow(sheet, "A1", &[]any{title}); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A2", &[]any{"Período", dateRange}); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A4", &header); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle); err != nil {
		return err
	}
	headStyle, err := headerStyle(f, colorHeaderBlue)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A4", lastCol+"4", headStyle); err != nil {
		return err
	}

	for i, row := range rows {
		label := row.TypeTrialName + " - " + row.CategoryName
		cells := []any{label}
		for _, et := range entryTypes {
			cells = append(cells, row.EntryTypes[et.ID])
		}
		for _, da := range autos {
			cells = append(cells, row.AutoDescriptions[da.ID])
		}
		for _, da := range sentencias {
			cells = append(cells, row.SentenciaDescriptions[da.ID])
		}
		cells = append(cells, row.TotalSentencias)

		addr, err := excelize.CoordinatesToCellName(1, 5+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	if len(header) > 1 {
		if err := f.SetColWidth(sheet, "B", lastCol, 20); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      4,
		TopLeftCell: "B5",
		ActivePane:  "bottomRight",
	})
}

func writeSummarySheet(f *excelize.File, rep *services.Report, dateRange string) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	rows := [][]any{
		{"REPORTE DE ESTADÍSTICAS"},
		{"Período", dateRange},
		{},
		{"RESUMEN GENERAL"},
		{"Total de Procesos", rep.TotalTrials},
		{"Total de Personas", rep.TotalPeople},
		{"Total de Actuaciones", rep.TotalActions},
		{"Total de Descripciones", rep.TotalDescriptions},
	}
	for i := range rows {
		addr, err := excelize.CoordinatesToCellName(1, 1+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, addr, &rows[i]); err != nil {
			return err
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheetSummary, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "B1", titleStyle); err != nil {
		return err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A4", "A4", sectionStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(sheetSummary, "B", "B", 20)
}

// writeTallySheet emits one {name, count} sheet with a bold TOTAL footer.
// Empty tallies get no sheet, matching the report consumers' expectation.
func writeTallySheet(f *excelize.File, sheet, nameHeader string, items []services.NameCount, total int, headerColor, totalColor string) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &[]any{nameHeader, "Cantidad"}); err != nil {
		return err
	}
	headStyle, err := headerStyle(f, headerColor)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headStyle); err != nil {
		return err
	}

	for i, item := range items {
		addr, err := excelize.CoordinatesToCellName(1, 2+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &[]any{item.Name, item.Value}); err != nil {
			return err
		}
	}

	totalRow := 2 + len(items)
	addr, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, addr, &[]any{"TOTAL", total}); err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{totalColor}},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, addr, fmt.Sprintf("B%d", totalRow), totalStyle); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 35); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 15)
}

func writeTrialDetailSheet(f *excelize.File, trials []domain.Trial) error {
	if len(trials) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheetTrialDetail); err != nil {
		return err
	}

	header := []any{"Número", "Tipo", "Demandante", "Demandado", "Fecha Llegada", "Estado", "Categoría"}
	if err := f.SetSheetRow(sheetTrialDetail, "A1", &header); err != nil {
		return err
	}
	headStyle, err := headerStyle(f, colorHeaderBlue)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetTrialDetail, "A1", "G1", headStyle); err != nil {
		return err
	}

	for i, tr := range trials {
		category := "N/A"
		if tr.Category != nil {
			category = tr.Category.Description
		}
		arrival := tr.ArrivalDate
		row := []any{
			tr.Number,
			tr.TypeTrial.Name,
			tr.Plaintiff.Name,
			tr.Defendant.Name,
			formatDate(&arrival),
			string(tr.Status),
			category,
		}
		addr, err := excelize.CoordinatesToCellName(1, 2+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetTrialDetail, addr, &row); err != nil {
			return err
		}
	}

	widths := []float64{15, 25, 20, 20, 15, 15, 15}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetTrialDetail, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func headerStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

// formatDate renders a report-period bound as dd/mm/yyyy, or "N/A" when open.
func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("02/01/2006")
}

package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// WorkbookExporter writes the summary statistics workbook
type WorkbookExporter struct {
	paths *config.Paths
}

// NewWorkbookExporter creates a new statistics workbook exporter
func NewWorkbookExporter(paths *config.Paths) *WorkbookExporter {
	return &WorkbookExporter{paths: paths}
}

// groupKeyHeaders maps each grouped view to the header of its key column.
var groupKeyHeaders = map[string]string{
	domain.ViewTrack:  domain.ColumnTrack,
	domain.ViewCohort: domain.ColumnCohort,
	domain.ViewIncome: domain.ColumnIncomeStudent,
}

// WriteStatisticsWorkbook writes the statistics bundle to an Excel workbook
// at path, one sheet per view, sheet names matching the view names.
func (w *WorkbookExporter) WriteStatisticsWorkbook(path string, bundle *domain.StatisticsBundle) error {
	fullPath := w.resolvePath(path)

	slog.Info("Writing statistics workbook",
		slog.String("file_path", path),
		slog.String("full_path", fullPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	views := domain.ViewNames()
	if err := f.SetSheetName(f.GetSheetName(0), views[0]); err != nil {
		return fmt.Errorf("failed to name sheet %s: %w", views[0], err)
	}
	for _, view := range views[1:] {
		if _, err := f.NewSheet(view); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", view, err)
		}
	}

	for _, view := range views {
		if err := writeViewSheet(f, view, bundle); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", view, err)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// writeViewSheet renders one statistics view onto its sheet
func writeViewSheet(f *excelize.File, view string, bundle *domain.StatisticsBundle) error {
	if groups, ok := bundle.GroupView(view); ok {
		return writeGroupSheet(f, view, groupKeyHeaders[view], groups)
	}

	switch view {
	case domain.ViewHistoryByTrack:
		rows := [][]interface{}{{domain.ColumnTrack, "HistoryScores"}}
		for _, series := range bundle.HistoryByTrack {
			rows = append(rows, []interface{}{series.Track, formatSeries(series.Values)})
		}
		return writeSheetRows(f, view, rows)

	case domain.ViewMathComparison:
		rows := [][]interface{}{{domain.ColumnTrack, "MathAvg"}}
		for _, mean := range bundle.MathComparison {
			rows = append(rows, []interface{}{mean.Track, nullableCell(mean.MathAvg)})
		}
		return writeSheetRows(f, view, rows)

	case domain.ViewAttendanceProjectCorr:
		rows := [][]interface{}{{domain.ColumnTrack, "Pairs", "Correlation"}}
		for _, corr := range bundle.AttendanceProjectCorr {
			rows = append(rows, []interface{}{corr.Track, corr.Pairs, nullableCell(corr.Coefficient)})
		}
		return writeSheetRows(f, view, rows)

	case domain.ViewGlobal:
		global := bundle.Global
		rows := [][]interface{}{
			{"MathAvg", "EnglishAvg", "ScienceAvg", "HistoryAvg", "AttendanceAvg", "ProjectAvg", "PassRate"},
			{
				nullableCell(global.MathAvg),
				nullableCell(global.EnglishAvg),
				nullableCell(global.ScienceAvg),
				nullableCell(global.HistoryAvg),
				nullableCell(global.AttendanceAvg),
				nullableCell(global.ProjectAvg),
				nullableCell(global.PassRate),
			},
		}
		return writeSheetRows(f, view, rows)
	}

	return fmt.Errorf("unknown view %q", view)
}

// writeGroupSheet renders a grouped summary view as one table
func writeGroupSheet(f *excelize.File, sheet, keyHeader string, groups []domain.GroupSummary) error {
	rows := [][]interface{}{{
		keyHeader, "Students",
		"MathAvg", "EnglishAvg", "ScienceAvg", "HistoryAvg", "AttendanceAvg", "ProjectAvg",
		"PassRate",
	}}
	for _, group := range groups {
		rows = append(rows, []interface{}{
			group.Key,
			group.Students,
			nullableCell(group.MathAvg),
			nullableCell(group.EnglishAvg),
			nullableCell(group.ScienceAvg),
			nullableCell(group.HistoryAvg),
			nullableCell(group.AttendanceAvg),
			nullableCell(group.ProjectAvg),
			nullableCell(group.PassRate),
		})
	}
	return writeSheetRows(f, sheet, rows)
}

// writeSheetRows writes rows onto a sheet starting at A1
func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}

// nullableCell renders a missing value as a blank cell instead of zero
func nullableCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// resolvePath resolves a relative path into the output directory
func (w *WorkbookExporter) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return w.paths.GetOutputPath(path)
}

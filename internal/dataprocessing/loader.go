package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// WorkbookLoader reads grade workbooks into raw source tables.
type WorkbookLoader struct {
	logger *slog.Logger
}

// NewWorkbookLoader creates a workbook loader
func NewWorkbookLoader(logger *slog.Logger) *WorkbookLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookLoader{
		logger: logger.With(slog.String("component", "workbook_loader")),
	}
}

// Load reads every sheet of the workbook at path into a source table.
// Sheet order is preserved and each sheet name becomes the group label for
// its rows. The first row of a sheet is its header; data rows shorter than
// the header are padded with empty cells so missing trailing values stay in
// their columns.
func (l *WorkbookLoader) Load(ctx context.Context, path string) ([]domain.Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	sources := make([]domain.Source, 0, len(sheets))

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %s", sheet), err)
		}

		var table domain.RawTable
		if len(rows) > 0 {
			table.Columns = rows[0]
			table.Rows = padRows(rows[1:], len(rows[0]))
		}

		l.logger.DebugContext(ctx, "loaded sheet",
			slog.String("sheet", sheet),
			slog.Int("columns", len(table.Columns)),
			slog.Int("rows", len(table.Rows)))

		sources = append(sources, domain.Source{Label: sheet, Table: table})
	}

	l.logger.InfoContext(ctx, "workbook loaded",
		slog.String("path", path),
		slog.Int("sheets", len(sources)))

	return sources, nil
}

// padRows right-pads each row with empty cells up to width. GetRows drops
// trailing empty cells, which would otherwise shift missing values out of
// their columns.
func padRows(rows [][]string, width int) [][]string {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) >= width {
			padded[i] = row
			continue
		}
		grown := make([]string, width)
		copy(grown, row)
		padded[i] = grown
	}
	return padded
}

package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// ExportResult reports where the dashboard artifacts were written
type ExportResult struct {
	DatasetPath  string
	WorkbookPath string
}

// ReportExporter writes the complete dashboard report: the cleaned dataset
// CSV and the summary statistics workbook, both into the output directory.
type ReportExporter struct {
	paths    *config.Paths
	dataset  *DatasetExporter
	workbook *WorkbookExporter
}

// NewReportExporter creates a new dashboard report exporter
func NewReportExporter(paths *config.Paths) *ReportExporter {
	return &ReportExporter{
		paths:    paths,
		dataset:  NewDatasetExporter(paths),
		workbook: NewWorkbookExporter(paths),
	}
}

// ExportAll writes both dashboard artifacts and returns their paths
func (r *ReportExporter) ExportAll(ctx context.Context, records []domain.Record, bundle *domain.StatisticsBundle) (*ExportResult, error) {
	if err := r.dataset.WriteDataset(r.paths.CleanedDatasetCSV, records); err != nil {
		return nil, apperrors.NewStorageError(
			fmt.Sprintf("failed to export %s", config.CleanedDatasetFile), err)
	}

	if err := r.workbook.WriteStatisticsWorkbook(r.paths.SummaryWorkbookXLSX, bundle); err != nil {
		return nil, apperrors.NewStorageError(
			fmt.Sprintf("failed to export %s", config.SummaryWorkbookFile), err)
	}

	result := &ExportResult{
		DatasetPath:  r.paths.CleanedDatasetCSV,
		WorkbookPath: r.paths.SummaryWorkbookXLSX,
	}

	slog.InfoContext(ctx, "Dashboard report exported",
		slog.String("dataset", result.DatasetPath),
		slog.String("workbook", result.WorkbookPath),
		slog.Int("record_count", len(records)))

	return result, nil
}

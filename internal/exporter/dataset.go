package exporter

import (
	"fmt"
	"log/slog"

	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// DatasetExporter writes the cleaned student dataset CSV
type DatasetExporter struct {
	csvWriter *CSVWriter
}

// NewDatasetExporter creates a new cleaned-dataset exporter
func NewDatasetExporter(paths *config.Paths) *DatasetExporter {
	return &DatasetExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// DatasetHeaders returns the cleaned dataset column order: the source
// columns in their original order with Track appended by the merge.
func DatasetHeaders() []string {
	return []string{
		domain.ColumnMath,
		domain.ColumnEnglish,
		domain.ColumnScience,
		domain.ColumnHistory,
		domain.ColumnAttendancePct,
		domain.ColumnProjectScore,
		domain.ColumnIncomeStudent,
		domain.ColumnPassed,
		domain.ColumnCohort,
		domain.ColumnTrack,
	}
}

// WriteDataset streams every record to the cleaned dataset CSV at path.
// Missing values render as empty cells so the exported file mirrors the
// records exactly.
func (d *DatasetExporter) WriteDataset(path string, records []domain.Record) error {
	stream, err := d.csvWriter.CreateStreamWriter(path, DatasetHeaders())
	if err != nil {
		return fmt.Errorf("failed to create dataset writer: %w", err)
	}

	for i, record := range records {
		if err := stream.WriteRecord(d.recordToCSVRow(record)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close dataset writer: %w", err)
	}

	slog.Info("Cleaned dataset written",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	return nil
}

// recordToCSVRow converts a student record to a CSV row in dataset column order
func (d *DatasetExporter) recordToCSVRow(record domain.Record) []string {
	return []string{
		formatNullableFloat(record.Math),
		formatNullableFloat(record.English),
		formatNullableFloat(record.Science),
		formatNullableFloat(record.History),
		formatNullableFloat(record.AttendancePct),
		formatNullableFloat(record.ProjectScore),
		formatBool(record.IncomeStudent),
		formatNullableBool(record.Passed),
		record.Cohort,
		record.Track,
	}
}

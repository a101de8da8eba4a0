// Package exporter provides export functionality for the grade analytics
// dashboard report.
//
// This package contains four main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// DatasetExporter: Writes the cleaned student dataset CSV with missing
// values rendered as empty cells.
//
// WorkbookExporter: Writes the summary statistics workbook, one sheet per
// statistics view.
//
// ReportExporter: Writes both artifacts in one call and reports their paths.
//
// Example usage:
//
//	// Export the full dashboard report
//	reportExporter := exporter.NewReportExporter(paths)
//	result, err := reportExporter.ExportAll(ctx, records, bundle)
//
//	// Or write the artifacts individually
//	datasetExporter := exporter.NewDatasetExporter(paths)
//	err = datasetExporter.WriteDataset("cleaned_dataset.csv", records)
//
//	workbookExporter := exporter.NewWorkbookExporter(paths)
//	err = workbookExporter.WriteStatisticsWorkbook("summary_statistics.xlsx", bundle)
package exporter

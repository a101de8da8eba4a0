// Package dataprocessing provides the grade analytics pipeline. It
// consolidates workbook loading, record normalization, and statistics
// aggregation into a cohesive package that handles the complete data
// lifecycle from Excel ingestion to derived statistics views.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. WorkbookLoader: Reads grade workbooks and extracts one raw table per sheet
// 2. Normalizer: Cleans raw tables into typed, nullable student records
// 3. Aggregator: Computes the grouped statistics views over the records
//
// # Usage
//
// Loading a workbook:
//
//	loader := dataprocessing.NewWorkbookLoader(logger)
//	sources, err := loader.Load(ctx, "data/student_grades_2024.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Normalizing and aggregating:
//
//	normalizer := dataprocessing.NewNormalizer(logger, dataprocessing.DefaultNormalizerConfig())
//	records, err := normalizer.Normalize(ctx, sources)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	aggregator := dataprocessing.NewAggregator(logger)
//	bundle, err := aggregator.Aggregate(ctx, records)
//
// # Data Flow
//
// The typical data flow through this package:
//
//	Excel File → WorkbookLoader → Sources → Normalizer → Records → Aggregator → StatisticsBundle
//
// # Missing Data
//
// Cell-level problems never fail the pipeline. Missing-value tokens and
// unparseable cells degrade to nil and stay nil through every downstream
// computation: group means average the values that exist, pass rates count
// only known outcomes, and correlations use only rows where both sides are
// present. Only structural problems fail a run: an unreadable workbook, an
// empty source collection, or an empty record set.
//
// # Determinism
//
// Aggregate is a pure function of its input. The bundle shares no pointers
// with the records, carries no timestamps, and orders every view either by
// sorted key or by first appearance, so identical records always produce an
// identical bundle.
package dataprocessing

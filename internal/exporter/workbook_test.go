package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// sampleBundle builds a small bundle covering every view.
func sampleBundle() *domain.StatisticsBundle {
	return &domain.StatisticsBundle{
		Track: []domain.GroupSummary{
			{
				Key:           "Arts Track",
				Students:      1,
				MathAvg:       floatPtr(55),
				PassRate:      nil,
				AttendanceAvg: nil,
			},
			{
				Key:           "Science Track",
				Students:      2,
				MathAvg:       floatPtr(85),
				EnglishAvg:    floatPtr(75.5),
				ScienceAvg:    floatPtr(90),
				HistoryAvg:    floatPtr(60),
				AttendanceAvg: floatPtr(95),
				ProjectAvg:    floatPtr(88),
				PassRate:      floatPtr(0.5),
			},
		},
		Cohort: []domain.GroupSummary{
			{Key: "2024A", Students: 2, MathAvg: floatPtr(70)},
		},
		Income: []domain.GroupSummary{
			{Key: "false", Students: 2, MathAvg: floatPtr(70)},
			{Key: "true", Students: 1, MathAvg: floatPtr(85)},
		},
		HistoryByTrack: []domain.TrackSeries{
			{Track: "Arts Track", Values: []*float64{floatPtr(50), nil, floatPtr(52)}},
		},
		MathComparison: []domain.TrackMean{
			{Track: "Arts Track", MathAvg: floatPtr(55)},
			{Track: "Science Track", MathAvg: floatPtr(85)},
		},
		AttendanceProjectCorr: []domain.TrackCorrelation{
			{Track: "Science Track", Pairs: 3, Coefficient: floatPtr(1)},
			{Track: "Arts Track", Pairs: 1, Coefficient: nil},
		},
		Global: domain.GlobalSummary{
			MathAvg:  floatPtr(75),
			PassRate: floatPtr(0.5),
		},
	}
}

func TestWorkbookExporter_WriteStatisticsWorkbook(t *testing.T) {
	outputDir := t.TempDir()
	exporter := NewWorkbookExporter(&config.Paths{OutputDir: outputDir})

	err := exporter.WriteStatisticsWorkbook("summary_statistics.xlsx", sampleBundle())
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(outputDir, "summary_statistics.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	// One sheet per view, named exactly after the views, in view order
	assert.Equal(t, domain.ViewNames(), f.GetSheetList())

	cell := func(sheet, ref string) string {
		value, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return value
	}

	// Track sheet: header row then one row per group
	assert.Equal(t, "Track", cell("track", "A1"))
	assert.Equal(t, "Students", cell("track", "B1"))
	assert.Equal(t, "MathAvg", cell("track", "C1"))
	assert.Equal(t, "PassRate", cell("track", "I1"))
	assert.Equal(t, "Arts Track", cell("track", "A2"))
	assert.Equal(t, "55", cell("track", "C2"))
	assert.Equal(t, "", cell("track", "I2"), "nil pass rate must be a blank cell")
	assert.Equal(t, "Science Track", cell("track", "A3"))
	assert.Equal(t, "2", cell("track", "B3"))
	assert.Equal(t, "85", cell("track", "C3"))
	assert.Equal(t, "0.5", cell("track", "I3"))

	// Cohort and income sheets carry their own key headers
	assert.Equal(t, "Cohort", cell("cohort", "A1"))
	assert.Equal(t, "2024A", cell("cohort", "A2"))
	assert.Equal(t, "IncomeStudent", cell("income", "A1"))
	assert.Equal(t, "false", cell("income", "A2"))
	assert.Equal(t, "true", cell("income", "A3"))

	// History series render as one comma-joined cell with gaps kept
	assert.Equal(t, "Track", cell("history_by_track", "A1"))
	assert.Equal(t, "HistoryScores", cell("history_by_track", "B1"))
	assert.Equal(t, "Arts Track", cell("history_by_track", "A2"))
	assert.Equal(t, "50.00,,52.00", cell("history_by_track", "B2"))

	// Math comparison mirrors the track view
	assert.Equal(t, "MathAvg", cell("math_comparison", "B1"))
	assert.Equal(t, "Arts Track", cell("math_comparison", "A2"))
	assert.Equal(t, "55", cell("math_comparison", "B2"))
	assert.Equal(t, "85", cell("math_comparison", "B3"))

	// Correlation sheet keeps first-appearance order and blank undefined cells
	assert.Equal(t, "Pairs", cell("attendance_project_corr", "B1"))
	assert.Equal(t, "Correlation", cell("attendance_project_corr", "C1"))
	assert.Equal(t, "Science Track", cell("attendance_project_corr", "A2"))
	assert.Equal(t, "3", cell("attendance_project_corr", "B2"))
	assert.Equal(t, "1", cell("attendance_project_corr", "C2"))
	assert.Equal(t, "Arts Track", cell("attendance_project_corr", "A3"))
	assert.Equal(t, "", cell("attendance_project_corr", "C3"))

	// Global sheet is a one-row table
	assert.Equal(t, "MathAvg", cell("global", "A1"))
	assert.Equal(t, "PassRate", cell("global", "G1"))
	assert.Equal(t, "75", cell("global", "A2"))
	assert.Equal(t, "0.5", cell("global", "G2"))
	assert.Equal(t, "", cell("global", "B2"), "missing global mean must be blank")
}

func TestWorkbookExporter_AbsolutePath(t *testing.T) {
	outputDir := t.TempDir()
	exporter := NewWorkbookExporter(&config.Paths{OutputDir: filepath.Join(outputDir, "unused")})

	target := filepath.Join(outputDir, "nested", "stats.xlsx")
	err := exporter.WriteStatisticsWorkbook(target, sampleBundle())
	require.NoError(t, err)

	f, err := excelize.OpenFile(target)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, domain.ViewNames(), f.GetSheetList())
}

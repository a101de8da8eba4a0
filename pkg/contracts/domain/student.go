package domain

// Canonical column headers recognized in grade workbooks. Header cells are
// matched against these names case-insensitively after trimming, so
// "math" and " MATH " both resolve to ColumnMath.
const (
	ColumnMath          = "Math"
	ColumnEnglish       = "English"
	ColumnScience       = "Science"
	ColumnHistory       = "History"
	ColumnAttendancePct = "Attendance (%)"
	ColumnProjectScore  = "ProjectScore"
	ColumnIncomeStudent = "IncomeStudent"
	ColumnPassed        = "Passed (Y/N)"
	ColumnCohort        = "Cohort"
	ColumnTrack         = "Track"
)

// NumericColumns lists the grade columns that are coerced to numbers during
// normalization, in the order they appear in exported datasets.
func NumericColumns() []string {
	return []string{
		ColumnMath,
		ColumnEnglish,
		ColumnScience,
		ColumnHistory,
		ColumnAttendancePct,
		ColumnProjectScore,
	}
}

// RawTable represents one rectangular sub-table of cell text exactly as it
// was read from a workbook sheet: a header row plus zero or more data rows.
// Cells are untyped strings; all interpretation happens during normalization.
type RawTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Source pairs a group label with the raw table recorded under that label.
// For workbook input the label is the sheet name. Sources are ordered: the
// normalizer emits rows in source order, and duplicate labels are allowed
// and accumulate rather than replace.
type Source struct {
	Label string   `json:"label" validate:"required"`
	Table RawTable `json:"table"`
}

// Record represents a single cleaned, type-coerced student row.
// Numeric fields and the pass flag are pointers so that a missing or
// uninterpretable cell survives as nil instead of a fabricated zero.
type Record struct {
	Track         string   `json:"track" validate:"required"`
	Math          *float64 `json:"math"`
	English       *float64 `json:"english"`
	Science       *float64 `json:"science"`
	History       *float64 `json:"history"`
	AttendancePct *float64 `json:"attendance_pct"`
	ProjectScore  *float64 `json:"project_score"`
	IncomeStudent bool     `json:"income_student"`
	Passed        *bool    `json:"passed"`
	Cohort        string   `json:"cohort"`
}

// HasScores reports whether the record carries at least one non-nil
// numeric measurement.
func (r Record) HasScores() bool {
	for _, v := range []*float64{r.Math, r.English, r.Science, r.History, r.AttendancePct, r.ProjectScore} {
		if v != nil {
			return true
		}
	}
	return false
}

package domain

// View names used to key the exported statistics workbook. The order of
// ViewNames is the order sheets appear in the workbook.
const (
	ViewTrack                 = "track"
	ViewCohort                = "cohort"
	ViewIncome                = "income"
	ViewHistoryByTrack        = "history_by_track"
	ViewMathComparison        = "math_comparison"
	ViewAttendanceProjectCorr = "attendance_project_corr"
	ViewGlobal                = "global"
)

// ViewNames returns the enumerated statistics views in their canonical order.
func ViewNames() []string {
	return []string{
		ViewTrack,
		ViewCohort,
		ViewIncome,
		ViewHistoryByTrack,
		ViewMathComparison,
		ViewAttendanceProjectCorr,
		ViewGlobal,
	}
}

// GroupSummary represents per-group descriptive statistics for one grouping
// key (a track, a cohort, or an income bucket). Averages are computed over
// non-nil values only; a nil average means the group had no usable values
// for that column. PassRate counts only records whose pass flag is known.
type GroupSummary struct {
	Key           string   `json:"key" validate:"required"`
	Students      int      `json:"students" validate:"min=0"`
	MathAvg       *float64 `json:"math_avg"`
	EnglishAvg    *float64 `json:"english_avg"`
	ScienceAvg    *float64 `json:"science_avg"`
	HistoryAvg    *float64 `json:"history_avg"`
	AttendanceAvg *float64 `json:"attendance_avg"`
	ProjectAvg    *float64 `json:"project_avg"`
	PassRate      *float64 `json:"pass_rate"`
}

// GlobalSummary represents dataset-wide means and the overall pass rate.
// Unlike GroupSummary it carries no student count.
type GlobalSummary struct {
	MathAvg       *float64 `json:"math_avg"`
	EnglishAvg    *float64 `json:"english_avg"`
	ScienceAvg    *float64 `json:"science_avg"`
	HistoryAvg    *float64 `json:"history_avg"`
	AttendanceAvg *float64 `json:"attendance_avg"`
	ProjectAvg    *float64 `json:"project_avg"`
	PassRate      *float64 `json:"pass_rate"`
}

// TrackSeries represents the ordered history scores of one track. Values
// preserve row order within the track and keep nil entries for missing
// scores so distribution consumers see gaps rather than shifted positions.
type TrackSeries struct {
	Track  string     `json:"track" validate:"required"`
	Values []*float64 `json:"values"`
}

// TrackMean represents one track's math average, projected from the track
// view for side-by-side comparison.
type TrackMean struct {
	Track   string   `json:"track" validate:"required"`
	MathAvg *float64 `json:"math_avg"`
}

// TrackCorrelation represents the Pearson correlation between attendance
// and project score within one track. Pairs counts the rows where both
// values were present. Coefficient is nil when fewer than two pairs exist
// or when either side has zero variance.
type TrackCorrelation struct {
	Track       string   `json:"track" validate:"required"`
	Pairs       int      `json:"pairs" validate:"min=0"`
	Coefficient *float64 `json:"coefficient"`
}

// StatisticsBundle is the complete set of derived views computed from one
// normalized dataset. A bundle is a self-contained value snapshot: it shares
// no pointers with the records it was computed from, and recomputing it over
// the same records yields an identical bundle.
type StatisticsBundle struct {
	Track                 []GroupSummary     `json:"track"`
	Cohort                []GroupSummary     `json:"cohort"`
	Income                []GroupSummary     `json:"income"`
	HistoryByTrack        []TrackSeries      `json:"history_by_track"`
	MathComparison        []TrackMean        `json:"math_comparison"`
	AttendanceProjectCorr []TrackCorrelation `json:"attendance_project_corr"`
	Global                GlobalSummary      `json:"global"`
}

// GroupView returns the grouped summaries stored under the given view name.
// It recognizes the track, cohort, and income views; other names return
// false.
func (b *StatisticsBundle) GroupView(name string) ([]GroupSummary, bool) {
	switch name {
	case ViewTrack:
		return b.Track, true
	case ViewCohort:
		return b.Cohort, true
	case ViewIncome:
		return b.Income, true
	default:
		return nil, false
	}
}

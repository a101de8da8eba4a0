package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// Aggregator computes the derived statistics views over normalized records.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		logger: logger.With(slog.String("component", "aggregator")),
	}
}

// Aggregate computes every statistics view over the given records. The
// bundle is a pure function of its input: it shares no pointers with the
// records and carries no timestamps or counters, so aggregating the same
// records twice yields identical bundles.
func (a *Aggregator) Aggregate(ctx context.Context, records []domain.Record) (*domain.StatisticsBundle, error) {
	if len(records) == 0 {
		return nil, apperrors.NewInsufficientDataError("no records to aggregate")
	}

	bundle := &domain.StatisticsBundle{
		Track:                 summarizeGroups(records, trackKey),
		Cohort:                summarizeGroups(records, cohortKey),
		Income:                summarizeGroups(records, incomeKey),
		HistoryByTrack:        historyByTrack(records),
		AttendanceProjectCorr: attendanceProjectCorrelation(records),
		Global:                summarizeGlobal(records),
	}

	// The comparison view is a projection of the track view
	bundle.MathComparison = projectMathComparison(bundle.Track)

	a.logger.InfoContext(ctx, "statistics computed",
		slog.Int("records", len(records)),
		slog.Int("tracks", len(bundle.Track)),
		slog.Int("cohorts", len(bundle.Cohort)))

	return bundle, nil
}

// trackKey groups by track; every record carries one.
func trackKey(rec domain.Record) (string, bool) {
	return rec.Track, true
}

// cohortKey groups by cohort; records without a cohort stay out of the view.
func cohortKey(rec domain.Record) (string, bool) {
	if rec.Cohort == "" {
		return "", false
	}
	return rec.Cohort, true
}

// incomeKey buckets records into "true" and "false".
func incomeKey(rec domain.Record) (string, bool) {
	return strconv.FormatBool(rec.IncomeStudent), true
}

// meanAccumulator tracks the running sum of non-nil finite values.
type meanAccumulator struct {
	sum   float64
	count int
}

func (m *meanAccumulator) add(v *float64) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return
	}
	m.sum += *v
	m.count++
}

// mean returns the average of the accumulated values, or nil when none
// were seen.
func (m *meanAccumulator) mean() *float64 {
	if m.count == 0 {
		return nil
	}
	value := m.sum / float64(m.count)
	return &value
}

// groupAccumulator collects the per-group statistics for one grouping key.
type groupAccumulator struct {
	students      int
	mathAcc       meanAccumulator
	englishAcc    meanAccumulator
	scienceAcc    meanAccumulator
	historyAcc    meanAccumulator
	attendanceAcc meanAccumulator
	projectAcc    meanAccumulator
	passTrue      int
	passKnown     int
}

func (g *groupAccumulator) add(rec domain.Record) {
	g.students++
	g.mathAcc.add(rec.Math)
	g.englishAcc.add(rec.English)
	g.scienceAcc.add(rec.Science)
	g.historyAcc.add(rec.History)
	g.attendanceAcc.add(rec.AttendancePct)
	g.projectAcc.add(rec.ProjectScore)

	if rec.Passed != nil {
		g.passKnown++
		if *rec.Passed {
			g.passTrue++
		}
	}
}

// passRate returns passes over known outcomes, or nil when every outcome
// in the group is unknown. Unknown outcomes never count as failures.
func (g *groupAccumulator) passRate() *float64 {
	if g.passKnown == 0 {
		return nil
	}
	rate := float64(g.passTrue) / float64(g.passKnown)
	return &rate
}

func (g *groupAccumulator) summary(key string) domain.GroupSummary {
	return domain.GroupSummary{
		Key:           key,
		Students:      g.students,
		MathAvg:       g.mathAcc.mean(),
		EnglishAvg:    g.englishAcc.mean(),
		ScienceAvg:    g.scienceAcc.mean(),
		HistoryAvg:    g.historyAcc.mean(),
		AttendanceAvg: g.attendanceAcc.mean(),
		ProjectAvg:    g.projectAcc.mean(),
		PassRate:      g.passRate(),
	}
}

// summarizeGroups groups records by key and summarizes each group, sorted
// by key. A group whose rows are all missing a column gets a nil average
// for it rather than disappearing from the view.
func summarizeGroups(records []domain.Record, key func(domain.Record) (string, bool)) []domain.GroupSummary {
	groups := make(map[string]*groupAccumulator)
	for _, rec := range records {
		k, ok := key(rec)
		if !ok {
			continue
		}
		acc := groups[k]
		if acc == nil {
			acc = &groupAccumulator{}
			groups[k] = acc
		}
		acc.add(rec)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	summaries := make([]domain.GroupSummary, 0, len(keys))
	for _, k := range keys {
		summaries = append(summaries, groups[k].summary(k))
	}
	return summaries
}

// historyByTrack collects each track's history scores in row order, nil
// entries included, tracks sorted by name.
func historyByTrack(records []domain.Record) []domain.TrackSeries {
	values := make(map[string][]*float64)
	for _, rec := range records {
		values[rec.Track] = append(values[rec.Track], cloneFloat(rec.History))
	}

	tracks := make([]string, 0, len(values))
	for track := range values {
		tracks = append(tracks, track)
	}
	sort.Strings(tracks)

	series := make([]domain.TrackSeries, 0, len(tracks))
	for _, track := range tracks {
		series = append(series, domain.TrackSeries{Track: track, Values: values[track]})
	}
	return series
}

// projectMathComparison projects the math column out of the track view, so
// the comparison can never drift from the per-track statistics.
func projectMathComparison(track []domain.GroupSummary) []domain.TrackMean {
	means := make([]domain.TrackMean, 0, len(track))
	for _, group := range track {
		means = append(means, domain.TrackMean{
			Track:   group.Key,
			MathAvg: cloneFloat(group.MathAvg),
		})
	}
	return means
}

// pairAccumulator tracks the sums needed for a Pearson correlation over
// pairs where both sides are present and finite.
type pairAccumulator struct {
	n     int
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (p *pairAccumulator) add(x, y float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	p.n++
	p.sumX += x
	p.sumY += y
	p.sumXX += x * x
	p.sumYY += y * y
	p.sumXY += x * y
}

// coefficient returns the Pearson correlation clamped to [-1, 1], or nil
// when fewer than two pairs were seen or either side has zero variance.
func (p *pairAccumulator) coefficient() *float64 {
	if p.n < 2 {
		return nil
	}

	n := float64(p.n)
	cov := n*p.sumXY - p.sumX*p.sumY
	varX := n*p.sumXX - p.sumX*p.sumX
	varY := n*p.sumYY - p.sumY*p.sumY
	if varX <= 0 || varY <= 0 {
		return nil
	}

	r := cov / math.Sqrt(varX*varY)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return &r
}

// attendanceProjectCorrelation computes the attendance/project correlation
// per track. Tracks appear in first-appearance order, and a track without
// enough usable pairs reports a nil coefficient instead of zero.
func attendanceProjectCorrelation(records []domain.Record) []domain.TrackCorrelation {
	accs := make(map[string]*pairAccumulator)
	var order []string

	for _, rec := range records {
		acc, seen := accs[rec.Track]
		if !seen {
			acc = &pairAccumulator{}
			accs[rec.Track] = acc
			order = append(order, rec.Track)
		}
		if rec.AttendancePct != nil && rec.ProjectScore != nil {
			acc.add(*rec.AttendancePct, *rec.ProjectScore)
		}
	}

	correlations := make([]domain.TrackCorrelation, 0, len(order))
	for _, track := range order {
		acc := accs[track]
		correlations = append(correlations, domain.TrackCorrelation{
			Track:       track,
			Pairs:       acc.n,
			Coefficient: acc.coefficient(),
		})
	}
	return correlations
}

// summarizeGlobal computes dataset-wide means and the overall pass rate.
func summarizeGlobal(records []domain.Record) domain.GlobalSummary {
	var acc groupAccumulator
	for _, rec := range records {
		acc.add(rec)
	}

	return domain.GlobalSummary{
		MathAvg:       acc.mathAcc.mean(),
		EnglishAvg:    acc.englishAcc.mean(),
		ScienceAvg:    acc.scienceAcc.mean(),
		HistoryAvg:    acc.historyAcc.mean(),
		AttendanceAvg: acc.attendanceAcc.mean(),
		ProjectAvg:    acc.projectAcc.mean(),
		PassRate:      acc.passRate(),
	}
}

// cloneFloat copies a float pointer so views never alias their inputs.
func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

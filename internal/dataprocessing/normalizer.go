package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// numericPattern extracts the first run of digits with an optional decimal
// part. "85%" coerces to 85 and "abc12.5xy" to 12.5. A sign is not part of
// the match, so "-5" coerces to 5.
var numericPattern = regexp.MustCompile(`(\d+\.?\d*)`)

// falsyTokens are the spellings of "no" accepted for the income flag.
var falsyTokens = map[string]struct{}{
	"0":     {},
	"f":     {},
	"false": {},
	"no":    {},
	"n":     {},
}

// NormalizerConfig controls how raw cells are interpreted.
type NormalizerConfig struct {
	// MissingTokens are cell values treated as absent in every column,
	// before any type coercion. Matching is exact: tokens are not trimmed
	// or case-folded.
	MissingTokens []string
}

// DefaultNormalizerConfig returns the missing-value tokens grade exports use.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		MissingTokens: []string{"Waived", "N/A", "NA", ""},
	}
}

// Normalizer converts labeled raw tables into typed student records.
type Normalizer struct {
	logger        *slog.Logger
	missingTokens map[string]struct{}
}

// NewNormalizer creates a normalizer. A nil logger falls back to the
// default logger; a config without missing tokens falls back to
// DefaultNormalizerConfig.
func NewNormalizer(logger *slog.Logger, config NormalizerConfig) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if len(config.MissingTokens) == 0 {
		config = DefaultNormalizerConfig()
	}

	tokens := make(map[string]struct{}, len(config.MissingTokens))
	for _, token := range config.MissingTokens {
		tokens[token] = struct{}{}
	}

	return &Normalizer{
		logger:        logger.With(slog.String("component", "normalizer")),
		missingTokens: tokens,
	}
}

// Normalize flattens the labeled source tables into one ordered record set.
// Each row gets its source label as Track, missing tokens are blanked
// before coercion, and cells are coerced per column type. Row order within
// a source and source order overall are preserved; sources sharing a label
// accumulate rather than replace one another.
func (n *Normalizer) Normalize(ctx context.Context, sources []domain.Source) ([]domain.Record, error) {
	if len(sources) == 0 {
		return nil, apperrors.NewDataSourceError("no source tables to normalize", nil)
	}

	total := 0
	for _, src := range sources {
		total += len(src.Table.Rows)
	}

	records := make([]domain.Record, 0, total)
	for _, src := range sources {
		cols := resolveColumns(src.Table.Columns)
		for _, row := range src.Table.Rows {
			records = append(records, n.normalizeRow(src.Label, row, cols))
		}
	}

	n.logger.InfoContext(ctx, "sources normalized",
		slog.Int("sources", len(sources)),
		slog.Int("records", len(records)))

	return records, nil
}

// columnIndexes holds the resolved position of each canonical column within
// one source table, or -1 when the table lacks that column.
type columnIndexes struct {
	math       int
	english    int
	science    int
	history    int
	attendance int
	project    int
	income     int
	passed     int
	cohort     int
}

// resolveColumns matches header cells to canonical columns. Header cells
// are trimmed and compared case-insensitively; the first match wins.
func resolveColumns(columns []string) columnIndexes {
	cols := columnIndexes{
		math:       -1,
		english:    -1,
		science:    -1,
		history:    -1,
		attendance: -1,
		project:    -1,
		income:     -1,
		passed:     -1,
		cohort:     -1,
	}

	assign := map[string]*int{
		strings.ToLower(domain.ColumnMath):          &cols.math,
		strings.ToLower(domain.ColumnEnglish):       &cols.english,
		strings.ToLower(domain.ColumnScience):       &cols.science,
		strings.ToLower(domain.ColumnHistory):       &cols.history,
		strings.ToLower(domain.ColumnAttendancePct): &cols.attendance,
		strings.ToLower(domain.ColumnProjectScore):  &cols.project,
		strings.ToLower(domain.ColumnIncomeStudent): &cols.income,
		strings.ToLower(domain.ColumnPassed):        &cols.passed,
		strings.ToLower(domain.ColumnCohort):        &cols.cohort,
	}

	for i, header := range columns {
		key := strings.ToLower(strings.TrimSpace(header))
		if target, ok := assign[key]; ok && *target == -1 {
			*target = i
		}
	}

	return cols
}

func (n *Normalizer) normalizeRow(label string, row []string, cols columnIndexes) domain.Record {
	return domain.Record{
		Track:         label,
		Math:          n.numericCell(row, cols.math),
		English:       n.numericCell(row, cols.english),
		Science:       n.numericCell(row, cols.science),
		History:       n.numericCell(row, cols.history),
		AttendancePct: n.numericCell(row, cols.attendance),
		ProjectScore:  n.numericCell(row, cols.project),
		IncomeStudent: n.truthyCell(row, cols.income),
		Passed:        n.passCell(row, cols.passed),
		Cohort:        n.textCell(row, cols.cohort),
	}
}

// cellAt returns the raw cell and whether the column exists in this row.
func cellAt(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}

// isMissing reports whether the cell is one of the missing-value tokens.
func (n *Normalizer) isMissing(cell string) bool {
	_, ok := n.missingTokens[cell]
	return ok
}

// numericCell coerces a cell to a float by extracting its first numeric
// substring. Missing tokens and cells without digits yield nil; coercion
// itself never fails.
func (n *Normalizer) numericCell(row []string, idx int) *float64 {
	cell, ok := cellAt(row, idx)
	if !ok || n.isMissing(cell) {
		return nil
	}

	match := numericPattern.FindString(cell)
	if match == "" {
		return nil
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// truthyCell coerces the income flag. Missing cells are false, recognized
// "no" spellings are false, anything parsing to zero is false, and every
// other value is true.
func (n *Normalizer) truthyCell(row []string, idx int) bool {
	cell, ok := cellAt(row, idx)
	if !ok || n.isMissing(cell) {
		return false
	}

	token := strings.ToLower(strings.TrimSpace(cell))
	if _, falsy := falsyTokens[token]; falsy {
		return false
	}
	if value, err := strconv.ParseFloat(token, 64); err == nil && value == 0 {
		return false
	}
	return true
}

// passCell coerces the pass flag. Only explicit Y and N count; anything
// else is unknown rather than failed.
func (n *Normalizer) passCell(row []string, idx int) *bool {
	cell, ok := cellAt(row, idx)
	if !ok || n.isMissing(cell) {
		return nil
	}

	switch strings.ToUpper(strings.TrimSpace(cell)) {
	case "Y":
		passed := true
		return &passed
	case "N":
		passed := false
		return &passed
	}
	return nil
}

// textCell returns the cell as-is with missing tokens blanked.
func (n *Normalizer) textCell(row []string, idx int) string {
	cell, ok := cellAt(row, idx)
	if !ok || n.isMissing(cell) {
		return ""
	}
	return cell
}

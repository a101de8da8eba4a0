package dataprocessing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "gradecli/internal/errors"
)

// writeGradeWorkbook builds a minimal two-sheet grade workbook on disk and
// returns its path.
func writeGradeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Math", "English", "Science", "History", "Attendance (%)", "ProjectScore", "IncomeStudent", "Passed (Y/N)", "Cohort"}

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Science Track"))
	require.NoError(t, f.SetSheetRow("Science Track", "A1", &headers))
	require.NoError(t, f.SetSheetRow("Science Track", "A2", &[]interface{}{"80", "75", "90", "70", "95%", "88", "yes", "Y", "2024A"}))
	// Second row stops after History; the loader pads the missing tail
	require.NoError(t, f.SetSheetRow("Science Track", "A3", &[]interface{}{"90", "N/A", "Waived", "60"}))

	_, err := f.NewSheet("Arts Track")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Arts Track", "A1", &headers))
	require.NoError(t, f.SetSheetRow("Arts Track", "A2", &[]interface{}{"55", "85", "NA", "72", "80", "65", "0", "N", "2024B"}))

	path := filepath.Join(t.TempDir(), "student_grades_2024_01.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbookLoader_Load(t *testing.T) {
	path := writeGradeWorkbook(t)

	loader := NewWorkbookLoader(nil)
	sources, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	// Sheet order is preserved and sheet names become labels
	assert.Equal(t, "Science Track", sources[0].Label)
	assert.Equal(t, "Arts Track", sources[1].Label)

	science := sources[0].Table
	require.Len(t, science.Columns, 9)
	assert.Equal(t, "Math", science.Columns[0])
	assert.Equal(t, "Cohort", science.Columns[8])
	require.Len(t, science.Rows, 2)

	// Short rows are padded to header width with empty cells
	require.Len(t, science.Rows[1], 9)
	assert.Equal(t, "90", science.Rows[1][0])
	assert.Equal(t, "N/A", science.Rows[1][1])
	assert.Equal(t, "", science.Rows[1][8])

	arts := sources[1].Table
	require.Len(t, arts.Rows, 1)
	assert.Equal(t, "2024B", arts.Rows[0][8])
}

func TestWorkbookLoader_Load_HeaderOnlySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Empty Track"))
	headers := []string{"Math", "English"}
	require.NoError(t, f.SetSheetRow("Empty Track", "A1", &headers))

	path := filepath.Join(t.TempDir(), "student_grades_empty.xlsx")
	require.NoError(t, f.SaveAs(path))

	loader := NewWorkbookLoader(nil)
	sources, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	assert.Equal(t, "Empty Track", sources[0].Label)
	assert.Equal(t, []string{"Math", "English"}, sources[0].Table.Columns)
	assert.Empty(t, sources[0].Table.Rows)
}

func TestWorkbookLoader_Load_MissingFile(t *testing.T) {
	loader := NewWorkbookLoader(nil)

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestPadRows(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"a"},
		{},
		{"a", "b", "c", "d"},
	}

	padded := padRows(rows, 3)
	require.Len(t, padded, 4)

	assert.Equal(t, []string{"a", "b", "c"}, padded[0])
	assert.Equal(t, []string{"a", "", ""}, padded[1])
	assert.Equal(t, []string{"", "", ""}, padded[2])
	// Rows wider than the header are left alone
	assert.Equal(t, []string{"a", "b", "c", "d"}, padded[3])
}

// Loaded tables feed straight into normalization; make sure the two agree
// on what a padded cell means.
func TestWorkbookLoader_LoadThenNormalize(t *testing.T) {
	path := writeGradeWorkbook(t)

	loader := NewWorkbookLoader(nil)
	sources, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	normalizer := NewNormalizer(nil, DefaultNormalizerConfig())
	records, err := normalizer.Normalize(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "Science Track", first.Track)
	require.NotNil(t, first.Math)
	assert.Equal(t, 80.0, *first.Math)
	require.NotNil(t, first.AttendancePct)
	assert.Equal(t, 95.0, *first.AttendancePct)
	assert.True(t, first.IncomeStudent)
	require.NotNil(t, first.Passed)
	assert.True(t, *first.Passed)
	assert.Equal(t, "2024A", first.Cohort)

	// Padded tail of the short row comes through as missing values
	second := records[1]
	assert.Nil(t, second.English)
	assert.Nil(t, second.Science)
	assert.Nil(t, second.Passed)
	assert.False(t, second.IncomeStudent)
	assert.Equal(t, "", second.Cohort)

	third := records[2]
	assert.Equal(t, "Arts Track", third.Track)
	require.NotNil(t, third.Passed)
	assert.False(t, *third.Passed)
	assert.False(t, third.IncomeStudent)
}

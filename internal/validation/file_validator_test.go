package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateDataDir(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		pattern       string
		wantErr       bool
		errorContains string
	}{
		{
			name: "directory with matching workbooks",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "student_grades_2024_01.xlsx")
				require.NoError(t, os.WriteFile(file, []byte("stub"), 0644))
				return dir
			},
			pattern: "student_grades_*.xlsx",
			wantErr: false,
		},
		{
			name: "directory without matching workbooks",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			pattern: "student_grades_*.xlsx",
			wantErr: false, // zero matches is discovery's concern, not a precondition failure
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent")
			},
			pattern:       "",
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "path is a file not a directory",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "grades.txt")
				require.NoError(t, os.WriteFile(file, []byte("stub"), 0644))
				return file
			},
			pattern:       "",
			wantErr:       true,
			errorContains: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(nil)
			dir := tt.setupFunc(t)

			err := validator.ValidateDataDir(dir, tt.pattern)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateWorkbook(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "readable xlsx file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "student_grades_2024_01.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
				return path
			},
			wantErr: false,
		},
		{
			name: "legacy xls extension accepted",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "student_grades_2019.xls")
				require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
				return path
			},
			wantErr: false,
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.xlsx")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "wrong extension",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "grades.csv")
				require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
				return path
			},
			wantErr:       true,
			errorContains: "not an Excel workbook",
		},
		{
			name: "excel lock file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "~$student_grades_2024_01.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
				return path
			},
			wantErr:       true,
			errorContains: "lock file",
		},
		{
			name: "directory instead of file",
			setupFunc: func(t *testing.T) string {
				dir := filepath.Join(t.TempDir(), "grades.xlsx")
				require.NoError(t, os.Mkdir(dir, 0755))
				return dir
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(nil)
			path := tt.setupFunc(t)

			err := validator.ValidateWorkbook(path)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDir(t *testing.T) {
	validator := NewFileValidator(nil)

	t.Run("existing directory", func(t *testing.T) {
		assert.NoError(t, validator.ValidateOutputDir(t.TempDir()))
	})

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "output", "nested")
		require.NoError(t, validator.ValidateOutputDir(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("write probe is cleaned up", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, validator.ValidateOutputDir(dir))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

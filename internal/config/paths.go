package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	OutputDir     string
	LogsDir       string

	// Well-known artifact files (inside the output directory)
	CleanedDatasetCSV   string
	SummaryWorkbookXLSX string
}

// GetPaths returns the application paths relative to the executable location
// using the default directory layout. All paths are relative to the
// executable directory, never the current working directory.
func GetPaths() (*Paths, error) {
	return ResolvePaths(PathsConfig{
		DataDir:   DefaultDataDir,
		OutputDir: DefaultOutputDir,
		LogsDir:   DefaultLogsDir,
	})
}

// ResolvePaths resolves the configured directories against the executable
// location. Absolute directories are kept as configured; relative ones are
// joined to the executable directory.
//
// Directory structure:
//
//	gradecli/
//	  ├── data/      (grade workbooks, student_grades_*.xlsx)
//	  ├── output/    (cleaned dataset and statistics workbook)
//	  └── logs/      (application logs)
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	// Get the directory containing the executable
	exeDir := filepath.Dir(exe)

	resolve := func(dir, fallback string) string {
		if dir == "" {
			dir = fallback
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(exeDir, dir)
	}

	dataDir := resolve(cfg.DataDir, DefaultDataDir)
	outputDir := resolve(cfg.OutputDir, DefaultOutputDir)
	logsDir := resolve(cfg.LogsDir, DefaultLogsDir)

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		OutputDir:     outputDir,
		LogsDir:       logsDir,

		// Exported artifacts live in the output directory
		CleanedDatasetCSV:   filepath.Join(outputDir, CleanedDatasetFile),
		SummaryWorkbookXLSX: filepath.Join(outputDir, SummaryWorkbookFile),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.OutputDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetDataPath returns the path for a file in the data directory
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetOutputPath returns the path for a file in the output directory
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("artifact_files",
			slog.String("cleaned_dataset_csv", p.CleanedDatasetCSV),
			slog.String("summary_workbook_xlsx", p.SummaryWorkbookXLSX),
		))
}

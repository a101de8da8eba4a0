package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gradecli/internal/alerts"
	"gradecli/internal/config"
	"gradecli/internal/dataprocessing"
	apperrors "gradecli/internal/errors"
	"gradecli/internal/exporter"
	"gradecli/internal/files"
	"gradecli/internal/infrastructure"
	"gradecli/internal/validation"
	"gradecli/pkg/contracts"
	"gradecli/pkg/contracts/domain"
)

// alertScope pairs a grouped statistics view with the label used in alert
// messages for that grouping.
type alertScope struct {
	View  string
	Label string
}

func main() {
	inDir := flag.String("in", "", "input directory for grade workbooks (defaults to data relative to executable)")
	outDir := flag.String("out", "", "output directory for exported reports (defaults to output relative to executable)")
	workbook := flag.String("workbook", "", "explicit workbook path, skips discovery")
	alertsMode := flag.String("alerts", "both", "alert scopes to print: track | cohort | both | none")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	scopes, err := alertScopes(*alertsMode)
	if err != nil {
		slog.Error("Invalid alerts flag", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// Flag overrides beat config and environment
	if *inDir != "" {
		cfg.Paths.DataDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	// One trace ID for the whole run
	ctx := infrastructure.ContextWithTraceID(context.Background())

	logger.InfoContext(ctx, "Starting grade report generation",
		slog.String("data_dir", paths.DataDir),
		slog.String("output_dir", paths.OutputDir),
		slog.String("alerts_mode", *alertsMode),
		slog.String("executable_dir", paths.ExecutableDir))

	validator := validation.NewFileValidator(logger)
	if *workbook == "" {
		if err := validator.ValidateDataDir(paths.DataDir, cfg.Ingest.WorkbookPattern); err != nil {
			logger.ErrorContext(ctx, "Data directory validation failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if err := validator.ValidateOutputDir(paths.OutputDir); err != nil {
		logger.ErrorContext(ctx, "Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	discovery := files.NewDiscovery(paths.ExecutableDir)
	workbookPath, err := selectWorkbook(discovery, paths.DataDir, cfg.Ingest.WorkbookPattern, *workbook)
	if err != nil {
		logger.ErrorContext(ctx, "No grade workbook to process", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := validator.ValidateWorkbook(workbookPath); err != nil {
		logger.ErrorContext(ctx, "Workbook validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Progress lines on stdout for operators and wrapping scripts
	fmt.Printf("Processing workbook: %s\n", filepath.Base(workbookPath))

	records, bundle, err := runPipeline(ctx, logger, workbookPath)
	if err != nil {
		logger.ErrorContext(ctx, "Pipeline failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Normalized %d records across %d tracks\n", len(records), len(bundle.Track))

	result, err := exporter.NewReportExporter(paths).ExportAll(ctx, records, bundle)
	if err != nil {
		logger.ErrorContext(ctx, "Export failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleaned dataset: %s\n", result.DatasetPath)
	fmt.Printf("Statistics workbook: %s\n", result.WorkbookPath)

	engine := alerts.NewEngine(logger, alerts.Config{
		MathAvgFloor:  cfg.Alerts.MathAvgFloor,
		PassRateFloor: cfg.Alerts.PassRateFloor,
	})
	raised := evaluateAlerts(os.Stdout, engine, bundle, scopes)

	logger.InfoContext(ctx, "Report generation complete",
		slog.Int("records", len(records)),
		slog.Int("tracks", len(bundle.Track)),
		slog.Int("alerts", raised))
	fmt.Println("Report generation complete")
}

// alertScopes maps the -alerts flag onto the group views it selects.
func alertScopes(mode string) ([]alertScope, error) {
	track := alertScope{View: domain.ViewTrack, Label: "Track"}
	cohort := alertScope{View: domain.ViewCohort, Label: "Cohort"}

	switch mode {
	case "track":
		return []alertScope{track}, nil
	case "cohort":
		return []alertScope{cohort}, nil
	case "both":
		return []alertScope{track, cohort}, nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("invalid alerts mode %q (want track, cohort, both or none)", mode)
}

// selectWorkbook resolves which workbook the run processes: the explicit
// path when given, otherwise the latest discovered grade workbook.
func selectWorkbook(discovery *files.Discovery, dataDir, pattern, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	workbooks, err := discovery.FindGradeWorkbooks(dataDir, pattern)
	if err != nil {
		return "", apperrors.NewDataSourceError("failed to scan data directory", err)
	}

	latest, ok := files.LatestByName(workbooks)
	if !ok {
		return "", apperrors.NewAppError(apperrors.ErrTypeNotFound, config.ErrNoWorkbooksFound, nil)
	}
	return latest.Path, nil
}

// runPipeline executes the batch pipeline over one workbook: load every
// sheet, normalize the labeled tables and aggregate the statistics bundle.
func runPipeline(ctx context.Context, logger *slog.Logger, workbookPath string) ([]domain.Record, *domain.StatisticsBundle, error) {
	sources, err := dataprocessing.NewWorkbookLoader(logger).Load(ctx, workbookPath)
	if err != nil {
		return nil, nil, err
	}

	records, err := dataprocessing.NewNormalizer(logger, dataprocessing.DefaultNormalizerConfig()).Normalize(ctx, sources)
	if err != nil {
		return nil, nil, err
	}

	bundle, err := dataprocessing.NewAggregator(logger).Aggregate(ctx, records)
	if err != nil {
		return nil, nil, err
	}

	return records, bundle, nil
}

// evaluateAlerts prints threshold breaches for every selected scope and
// returns how many alerts were raised.
func evaluateAlerts(w io.Writer, engine *alerts.Engine, bundle *domain.StatisticsBundle, scopes []alertScope) int {
	raised := 0
	for _, scope := range scopes {
		groups, ok := bundle.GroupView(scope.View)
		if !ok {
			continue
		}
		for _, alert := range engine.Evaluate(scope.Label, groups) {
			fmt.Fprintf(w, "ALERT: %s\n", alert.Message)
			raised++
		}
	}
	if len(scopes) > 0 {
		fmt.Fprintf(w, "Alerts raised: %d\n", raised)
	}
	return raised
}

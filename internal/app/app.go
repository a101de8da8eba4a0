package app

import (
	"bufio"
	"context"
	"io"
	"log/slog"

	"gradecli/internal/alerts"
	"gradecli/internal/config"
	"gradecli/internal/dataprocessing"
	apperrors "gradecli/internal/errors"
	"gradecli/internal/exporter"
	"gradecli/internal/files"
	"gradecli/pkg/contracts/domain"
)

// Application wires the ingestion pipeline, the statistics views and the
// collaborators behind the interactive menu. The reader and writer are
// injected so tests can script whole sessions.
type Application struct {
	Config     *config.Config
	Paths      *config.Paths
	Logger     *slog.Logger
	Discovery  *files.Discovery
	Loader     *dataprocessing.WorkbookLoader
	Normalizer *dataprocessing.Normalizer
	Aggregator *dataprocessing.Aggregator
	Exporter   *exporter.ReportExporter
	Alerts     *alerts.Engine

	in  *bufio.Scanner
	out io.Writer

	records []domain.Record
	bundle  *domain.StatisticsBundle
}

// New creates the application with all collaborators wired. Configuration
// and paths come from the caller so entry points can apply flag overrides
// before construction.
func New(cfg *config.Config, paths *config.Paths, logger *slog.Logger, in io.Reader, out io.Writer) *Application {
	if logger == nil {
		logger = slog.Default()
	}

	return &Application{
		Config:     cfg,
		Paths:      paths,
		Logger:     logger,
		Discovery:  files.NewDiscovery(paths.ExecutableDir),
		Loader:     dataprocessing.NewWorkbookLoader(logger),
		Normalizer: dataprocessing.NewNormalizer(logger, dataprocessing.DefaultNormalizerConfig()),
		Aggregator: dataprocessing.NewAggregator(logger),
		Exporter:   exporter.NewReportExporter(paths),
		Alerts: alerts.NewEngine(logger, alerts.Config{
			MathAvgFloor:  cfg.Alerts.MathAvgFloor,
			PassRateFloor: cfg.Alerts.PassRateFloor,
		}),
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run loads the latest grade workbook, computes the statistics bundle once,
// then serves the main menu until the user quits or input ends.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	if err := a.loadDataset(ctx); err != nil {
		return err
	}

	a.mainMenu(ctx)

	a.Logger.InfoContext(ctx, "Application exiting")
	return nil
}

// loadDataset discovers the latest grade workbook by name, then runs
// load, normalize and aggregate up front. Every menu action afterwards
// reads from the cached records and bundle.
func (a *Application) loadDataset(ctx context.Context) error {
	workbooks, err := a.Discovery.FindGradeWorkbooks(a.Paths.DataDir, a.Config.Ingest.WorkbookPattern)
	if err != nil {
		return apperrors.NewDataSourceError("failed to scan data directory", err)
	}

	latest, ok := files.LatestByName(workbooks)
	if !ok {
		// Surface what is actually in the data directory when nothing
		// matches the pattern. Misnamed exports are the usual cause.
		if present, listErr := a.Discovery.FindExcelFiles(a.Paths.DataDir); listErr == nil && len(present) > 0 {
			names := make([]string, len(present))
			for i, f := range present {
				names[i] = f.Name
			}
			a.Logger.WarnContext(ctx, "Excel files present but none match the workbook pattern",
				slog.String("pattern", a.Config.Ingest.WorkbookPattern),
				slog.Any("files", names))
		}
		return apperrors.NewAppError(apperrors.ErrTypeNotFound, config.ErrNoWorkbooksFound, nil)
	}

	a.Logger.InfoContext(ctx, "Loading grade workbook",
		slog.String("file", latest.Name),
		slog.Int("candidates", len(workbooks)))

	sources, err := a.Loader.Load(ctx, latest.Path)
	if err != nil {
		return err
	}

	records, err := a.Normalizer.Normalize(ctx, sources)
	if err != nil {
		return err
	}

	bundle, err := a.Aggregator.Aggregate(ctx, records)
	if err != nil {
		return err
	}

	a.records = records
	a.bundle = bundle

	a.Logger.InfoContext(ctx, "Dataset ready",
		slog.Int("records", len(records)),
		slog.Int("tracks", len(bundle.Track)),
		slog.Int("cohorts", len(bundle.Cohort)))
	return nil
}

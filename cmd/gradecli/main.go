package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gradecli/internal/app"
	"gradecli/internal/config"
	"gradecli/internal/infrastructure"
	"gradecli/pkg/contracts"
)

func main() {
	inDir := flag.String("in", "", "input directory for grade workbooks (defaults to data relative to executable)")
	outDir := flag.String("out", "", "output directory for exported reports (defaults to output relative to executable)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg := sessionConfig(*inDir, *outDir)

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
	defer infrastructure.CloseLogFile()

	// One trace ID for the whole session
	ctx := infrastructure.ContextWithTraceID(context.Background())

	application := app.New(cfg, paths, logger, os.Stdin, os.Stdout)
	if err := application.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Application error", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// sessionConfig loads the configuration for an interactive session. Flag
// overrides beat config and environment, and log output is forced to the
// log file because the menu owns stdout.
func sessionConfig(inDir, outDir string) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if inDir != "" {
		cfg.Paths.DataDir = inDir
	}
	if outDir != "" {
		cfg.Paths.OutputDir = outDir
	}

	if cfg.Logging.Output == "both" || cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "file"
	}

	return cfg
}

// Package app provides the interactive analytics shell for Grade Pulse.
// It wires the ingestion pipeline, the statistics engine, the exporters and
// the alert engine behind a menu-driven terminal session.
//
// # Architecture
//
// The app package follows a dependency injection pattern where all
// collaborators are wired together at construction. Entry points own
// configuration loading and logger initialization and pass both in, which
// keeps the shell itself free of process-global state.
//
// # Session Flow
//
// A session runs in two phases:
//
//	1. Load: discover the latest grade workbook, normalize it and compute
//	   the statistics bundle once.
//	2. Serve: loop the main menu over the cached bundle until the user
//	   quits or input ends.
//
// Menu actions only read the cached records and bundle; no menu action
// mutates or recomputes the dataset.
//
// # Usage
//
// The main entry point is typically:
//
//	application := app.New(cfg, paths, logger, os.Stdin, os.Stdout)
//	if err := application.Run(ctx); err != nil {
//	    // report and exit non-zero
//	}
//
// # Input Handling
//
// Input is read line by line through a bufio.Scanner on the injected
// reader. End of input is treated as quitting, so scripted sessions and
// piped input terminate cleanly.
//
// # Error Handling
//
// Startup pipeline errors are returned to the caller for proper handling.
// The app does not call os.Exit() directly, allowing the main function to
// control the exit process. Menu actions report failures inline and keep
// the session alive.
package app

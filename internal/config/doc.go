// Package config provides centralized configuration management for the
// Grade Pulse tooling. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern GRADES_* for namespacing:
//
//	GRADES_LOGGING_LEVEL=info
//	GRADES_PATHS_DATA_DIR=data
//	GRADES_INGEST_WORKBOOK_PATTERN=student_grades_*.xlsx
//	GRADES_ALERTS_MATH_AVG_FLOOR=70
//	GRADES_ALERTS_PASS_RATE_FLOOR=0.6
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	workbook := paths.GetDataPath("student_grades_2024.xlsx")
//	dataset := paths.CleanedDatasetCSV
//
// # Validation
//
// All configuration is validated at load time with struct tags to ensure:
//
//	- Required fields are present
//	- Alert thresholds are within acceptable ranges
//	- The workbook pattern is a well-formed glob
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config

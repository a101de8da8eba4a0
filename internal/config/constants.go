package config

// Application constants - all hardcoded values for the Grade Pulse tooling
const (
	// Application Info
	AppName    = "Grade Pulse"
	AppVersion = "1.0.0"

	// File Paths (relative to executable)
	DefaultDataDir   = "data"
	DefaultOutputDir = "output"
	DefaultLogsDir   = "logs"

	// Grade Workbook Discovery
	GradeWorkbookPattern = "student_grades_*.xlsx"

	// Exported Artifacts
	CleanedDatasetFile  = "cleaned_dataset.csv"
	SummaryWorkbookFile = "summary_statistics.xlsx"

	// Alert Thresholds
	DefaultMathAvgFloor  = 70.0
	DefaultPassRateFloor = 0.6

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "both"
	DefaultLogFile   = "logs/gradecli.log"

	// Error Messages
	ErrNoWorkbooksFound = "No grade workbooks found. Place student_grades_*.xlsx files in the data directory."
	ErrDatasetNotLoaded = "Dataset not loaded. Run ingestion before requesting statistics."

	// Shell Messages
	MsgInvalidMode   = "Invalid mode."
	MsgInvalidChoice = "Invalid choice."
)

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "gradecli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Ingest  IngestConfig  `yaml:"ingest" envconfig:"INGEST"`
	Alerts  AlertsConfig  `yaml:"alerts" envconfig:"ALERTS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"omitempty,oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/gradecli.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output" validate:"required"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs" validate:"required"`
}

// IngestConfig contains grade workbook discovery configuration
type IngestConfig struct {
	WorkbookPattern string `yaml:"workbook_pattern" envconfig:"WORKBOOK_PATTERN" default:"student_grades_*.xlsx" validate:"required,filepattern"`
}

// AlertsConfig contains performance alert thresholds. A group alerts when
// its math average falls strictly below MathAvgFloor or its pass rate falls
// strictly below PassRateFloor.
type AlertsConfig struct {
	MathAvgFloor  float64 `yaml:"math_avg_floor" envconfig:"MATH_AVG_FLOOR" default:"70" validate:"gte=0,lte=100"`
	PassRateFloor float64 `yaml:"pass_rate_floor" envconfig:"PASS_RATE_FLOOR" default:"0.6" validate:"gte=0,lte=1"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("GRADES", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Resolve relative paths
	if err := cfg.resolvePaths(); err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// A field keeps its env value unless it still carries the compiled default
// and the file supplies one.
func mergeConfigs(fileConfig, envConfig Config) Config {
	def := Default()

	// Logging config
	if envConfig.Logging.Level == def.Logging.Level && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == def.Logging.Format && fileConfig.Logging.Format != "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == def.Logging.Output && fileConfig.Logging.Output != "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == def.Logging.FilePath && fileConfig.Logging.FilePath != "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	// Paths config
	if envConfig.Paths.DataDir == def.Paths.DataDir && fileConfig.Paths.DataDir != "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Paths.OutputDir == def.Paths.OutputDir && fileConfig.Paths.OutputDir != "" {
		envConfig.Paths.OutputDir = fileConfig.Paths.OutputDir
	}
	if envConfig.Paths.LogsDir == def.Paths.LogsDir && fileConfig.Paths.LogsDir != "" {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}

	// Ingest config
	if envConfig.Ingest.WorkbookPattern == def.Ingest.WorkbookPattern && fileConfig.Ingest.WorkbookPattern != "" {
		envConfig.Ingest.WorkbookPattern = fileConfig.Ingest.WorkbookPattern
	}

	// Alerts config
	if envConfig.Alerts.MathAvgFloor == def.Alerts.MathAvgFloor && fileConfig.Alerts.MathAvgFloor != 0 {
		envConfig.Alerts.MathAvgFloor = fileConfig.Alerts.MathAvgFloor
	}
	if envConfig.Alerts.PassRateFloor == def.Alerts.PassRateFloor && fileConfig.Alerts.PassRateFloor != 0 {
		envConfig.Alerts.PassRateFloor = fileConfig.Alerts.PassRateFloor
	}

	return envConfig
}

// resolvePaths sets up the executable directory for path resolution
func (c *Config) resolvePaths() error {
	paths, err := ResolvePaths(c.Paths)
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	c.Paths.ExecutableDir = paths.ExecutableDir

	return nil
}

// GetDataDir returns the resolved data directory path
func (c *Config) GetDataDir() string {
	paths, err := ResolvePaths(c.Paths)
	if err != nil {
		// Fallback to config-based resolution if paths system fails
		if filepath.IsAbs(c.Paths.DataDir) {
			return c.Paths.DataDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.DataDir)
	}
	return paths.DataDir
}

// GetOutputDir returns the resolved output directory path
func (c *Config) GetOutputDir() string {
	paths, err := ResolvePaths(c.Paths)
	if err != nil {
		// Fallback to config-based resolution if paths system fails
		if filepath.IsAbs(c.Paths.OutputDir) {
			return c.Paths.OutputDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.OutputDir)
	}
	return paths.OutputDir
}

// GetLogsDir returns the resolved logs directory path
func (c *Config) GetLogsDir() string {
	paths, err := ResolvePaths(c.Paths)
	if err != nil {
		// Fallback to config-based resolution if paths system fails
		if filepath.IsAbs(c.Paths.LogsDir) {
			return c.Paths.LogsDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.LogsDir)
	}
	return paths.LogsDir
}

// validate validates the configuration using struct tags and normalizes
// the logging settings
func (c *Config) validate() error {
	v := newValidator()

	if err := v.Struct(c); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.NewAppValidationError(err.Error())
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, formatValidationError(fieldErr))
		}
		return apperrors.NewAppValidationError(strings.Join(messages, "; "))
	}

	// Logging output is always JSON
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// newValidator builds the validator used for config structs
func newValidator() *validator.Validate {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("filepattern", isValidFilePattern)

	// Use YAML tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// isValidFilePattern reports whether the field holds a well-formed glob pattern
func isValidFilePattern(fl validator.FieldLevel) bool {
	_, err := filepath.Match(fl.Field().String(), "probe")
	return err == nil
}

// formatValidationError converts a field error into a readable message
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	tag := err.Tag()
	param := err.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Replace(param, " ", ", ", -1))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "filepattern":
		return fmt.Sprintf("%s must be a valid glob pattern", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, tag)
	}
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
		"../../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir:   DefaultDataDir,
			OutputDir: DefaultOutputDir,
			LogsDir:   DefaultLogsDir,
		},
		Ingest: IngestConfig{
			WorkbookPattern: GradeWorkbookPattern,
		},
		Alerts: AlertsConfig{
			MathAvgFloor:  DefaultMathAvgFloor,
			PassRateFloor: DefaultPassRateFloor,
		},
	}
}

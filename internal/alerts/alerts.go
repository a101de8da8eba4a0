package alerts

import (
	"fmt"
	"log/slog"

	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// Alert represents one breached performance floor in one group
type Alert struct {
	Group     string
	Metric    string
	Value     float64
	Threshold float64
	Message   string
}

// Config holds the performance floors checked by the engine
type Config struct {
	MathAvgFloor  float64
	PassRateFloor float64
}

// DefaultConfig returns the standard performance floors
func DefaultConfig() Config {
	return Config{
		MathAvgFloor:  config.DefaultMathAvgFloor,
		PassRateFloor: config.DefaultPassRateFloor,
	}
}

// Engine evaluates group summaries against the configured floors. It
// performs no aggregation of its own; it only reads summaries already
// computed.
type Engine struct {
	logger *slog.Logger
	config Config
}

// NewEngine creates an alert engine. A nil logger falls back to the default
// logger; unset floors fall back to DefaultConfig.
func NewEngine(logger *slog.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	defaults := DefaultConfig()
	if cfg.MathAvgFloor <= 0 {
		cfg.MathAvgFloor = defaults.MathAvgFloor
	}
	if cfg.PassRateFloor <= 0 {
		cfg.PassRateFloor = defaults.PassRateFloor
	}

	return &Engine{
		logger: logger.With(slog.String("component", "alerts")),
		config: cfg,
	}
}

// Evaluate checks every group against the floors and returns one alert per
// breached metric. Comparison is strictly below the floor; a nil metric
// never alerts because an unknown mean is not a low mean. The scope names
// the grouping in alert messages ("Track", "Cohort").
func (e *Engine) Evaluate(scope string, groups []domain.GroupSummary) []Alert {
	var alerts []Alert

	for _, group := range groups {
		if group.MathAvg != nil && *group.MathAvg < e.config.MathAvgFloor {
			alerts = append(alerts, Alert{
				Group:     group.Key,
				Metric:    "MathAvg",
				Value:     *group.MathAvg,
				Threshold: e.config.MathAvgFloor,
				Message: fmt.Sprintf("%s '%s' has LOW Math performance (avg = %.1f)",
					scope, group.Key, *group.MathAvg),
			})
		}

		if group.PassRate != nil && *group.PassRate < e.config.PassRateFloor {
			alerts = append(alerts, Alert{
				Group:     group.Key,
				Metric:    "PassRate",
				Value:     *group.PassRate,
				Threshold: e.config.PassRateFloor,
				Message: fmt.Sprintf("%s '%s' has LOW Pass Rate (%.1f %%)",
					scope, group.Key, *group.PassRate*100),
			})
		}
	}

	e.logger.Debug("groups evaluated",
		slog.String("scope", scope),
		slog.Int("groups", len(groups)),
		slog.Int("alerts", len(alerts)))

	return alerts
}

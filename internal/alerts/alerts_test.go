package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/pkg/contracts/domain"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 70.0, cfg.MathAvgFloor)
	assert.Equal(t, 0.6, cfg.PassRateFloor)
}

func TestNewEngine_FillsDefaults(t *testing.T) {
	engine := NewEngine(nil, Config{})
	assert.Equal(t, DefaultConfig(), engine.config)

	custom := NewEngine(nil, Config{MathAvgFloor: 50, PassRateFloor: 0.4})
	assert.Equal(t, 50.0, custom.config.MathAvgFloor)
	assert.Equal(t, 0.4, custom.config.PassRateFloor)
}

func TestEngine_Evaluate(t *testing.T) {
	engine := NewEngine(nil, DefaultConfig())

	tests := []struct {
		name   string
		scope  string
		groups []domain.GroupSummary
		want   []Alert
	}{
		{
			name:  "both floors breached",
			scope: "Track",
			groups: []domain.GroupSummary{
				{Key: "Arts Track", MathAvg: floatPtr(55), PassRate: floatPtr(0.4)},
			},
			want: []Alert{
				{
					Group:     "Arts Track",
					Metric:    "MathAvg",
					Value:     55,
					Threshold: 70,
					Message:   "Track 'Arts Track' has LOW Math performance (avg = 55.0)",
				},
				{
					Group:     "Arts Track",
					Metric:    "PassRate",
					Value:     0.4,
					Threshold: 0.6,
					Message:   "Track 'Arts Track' has LOW Pass Rate (40.0 %)",
				},
			},
		},
		{
			name:  "values at the floor do not alert",
			scope: "Track",
			groups: []domain.GroupSummary{
				{Key: "Science Track", MathAvg: floatPtr(70), PassRate: floatPtr(0.6)},
			},
			want: nil,
		},
		{
			name:  "nil metrics never alert",
			scope: "Track",
			groups: []domain.GroupSummary{
				{Key: "Empty Track", MathAvg: nil, PassRate: nil},
			},
			want: nil,
		},
		{
			name:  "only math below floor",
			scope: "Track",
			groups: []domain.GroupSummary{
				{Key: "Business Track", MathAvg: floatPtr(69.9), PassRate: floatPtr(0.9)},
			},
			want: []Alert{
				{
					Group:     "Business Track",
					Metric:    "MathAvg",
					Value:     69.9,
					Threshold: 70,
					Message:   "Track 'Business Track' has LOW Math performance (avg = 69.9)",
				},
			},
		},
		{
			name:  "cohort scope wording",
			scope: "Cohort",
			groups: []domain.GroupSummary{
				{Key: "2024A", MathAvg: floatPtr(80), PassRate: floatPtr(0.25)},
			},
			want: []Alert{
				{
					Group:     "2024A",
					Metric:    "PassRate",
					Value:     0.25,
					Threshold: 0.6,
					Message:   "Cohort '2024A' has LOW Pass Rate (25.0 %)",
				},
			},
		},
		{
			name:  "healthy groups stay quiet",
			scope: "Track",
			groups: []domain.GroupSummary{
				{Key: "Science Track", MathAvg: floatPtr(92), PassRate: floatPtr(1)},
				{Key: "Arts Track", MathAvg: floatPtr(75), PassRate: floatPtr(0.8)},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Evaluate(tt.scope, tt.groups)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_Evaluate_CustomFloors(t *testing.T) {
	engine := NewEngine(nil, Config{MathAvgFloor: 50, PassRateFloor: 0.3})

	groups := []domain.GroupSummary{
		{Key: "A", MathAvg: floatPtr(55), PassRate: floatPtr(0.4)},
		{Key: "B", MathAvg: floatPtr(45), PassRate: floatPtr(0.2)},
	}

	got := engine.Evaluate("Track", groups)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Group)
	assert.Equal(t, "MathAvg", got[0].Metric)
	assert.Equal(t, "B", got[1].Group)
	assert.Equal(t, "PassRate", got[1].Metric)
}

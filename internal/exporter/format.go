package exporter

import (
	"fmt"
	"strings"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	// Always format with exactly 2 decimal places for consistency
	// This ensures values like 13.4 appear as 13.40 in CSV
	return fmt.Sprintf("%.2f", f)
}

// formatNullableFloat formats an optional float; missing values render as
// an empty cell rather than a zero
func formatNullableFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// formatNullableBool formats the tri-state pass flag; unknown renders as an
// empty cell, never as false
func formatNullableBool(b *bool) string {
	if b == nil {
		return ""
	}
	return formatBool(*b)
}

// formatSeries joins an ordered value series into one comma-separated cell,
// keeping empty slots for missing values so positions stay aligned
func formatSeries(values []*float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatNullableFloat(v)
	}
	return strings.Join(parts, ",")
}

package enums

import "fmt"

// Granularity describes the time-bucket size for aggregated order metrics.
type Granularity string

const (
	GranularityHour    Granularity = "Hour"
	GranularityDay     Granularity = "Day"
	GranularityWeek    Granularity = "Week"
	GranularityMonth   Granularity = "Month"
	GranularityQuarter Granularity = "Quarter"
	GranularityYear    Granularity = "Year"
)

var validGranularities = []Granularity{
	GranularityHour,
	GranularityDay,
	GranularityWeek,
	GranularityMonth,
	GranularityQuarter,
	GranularityYear,
}

// IsValid reports whether the value matches the canonical granularity enum.
func (g Granularity) IsValid() bool {
	for _, candidate := range validGranularities {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGranularity converts the raw string to Granularity.
func ParseGranularity(value string) (Granularity, error) {
	for _, candidate := range validGranularities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid granularity %q", value)
}

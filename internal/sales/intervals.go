package sales

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/enums"
)

// Interval is one half-open aggregation bucket [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// GenerateIntervals slices [start, end) into contiguous non-overlapping
// buckets for the granularity. Week buckets align to firstDayOfWeek, so the
// first bucket may be shorter than a full week; the final bucket of every
// granularity is clamped to end. Calendar buckets (Month, Quarter, Year)
// keep the time-of-day of the running cursor at each boundary.
func GenerateIntervals(granularity enums.Granularity, start, end time.Time, firstDayOfWeek enums.Weekday) []Interval {
	var intervals []Interval
	current := start

	for current.Before(end) {
		var next time.Time
		switch granularity {
		case enums.GranularityHour:
			next = current.Add(time.Hour)
		case enums.GranularityDay:
			next = current.AddDate(0, 0, 1)
		case enums.GranularityWeek:
			sinceWeekStart := (weekdayOffset(current) - firstDayOfWeek.Offset() + 7) % 7
			weekStart := current.AddDate(0, 0, -sinceWeekStart)
			next = weekStart.AddDate(0, 0, 7)
		case enums.GranularityMonth:
			next = atDayOne(current, current.Year(), current.Month()+1)
		case enums.GranularityQuarter:
			quarter := (int(current.Month())-1)/3 + 1
			if quarter == 4 {
				next = atDayOne(current, current.Year()+1, time.January)
			} else {
				next = atDayOne(current, current.Year(), time.Month(quarter*3+1))
			}
		case enums.GranularityYear:
			next = atDayOne(current, current.Year()+1, time.January)
		default:
			return nil
		}

		if next.After(end) {
			next = end
		}
		intervals = append(intervals, Interval{Start: current, End: next})
		current = next
	}

	return intervals
}

// weekdayOffset maps to the Monday=0..Sunday=6 numbering used by the
// firstDayOfWeek parameter.
func weekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func atDayOne(current time.Time, year int, month time.Month) time.Time {
	return time.Date(year, month, 1,
		current.Hour(), current.Minute(), current.Second(), current.Nanosecond(),
		current.Location())
}

// FormatInterval renders the wire form "start/end" in RFC3339.
func FormatInterval(iv Interval) string {
	return iv.Start.UTC().Format(time.RFC3339) + "/" + iv.End.UTC().Format(time.RFC3339)
}

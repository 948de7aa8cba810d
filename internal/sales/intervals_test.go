package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellgrid/sellermock/pkg/enums"
)

var allGranularities = []enums.Granularity{
	enums.GranularityHour,
	enums.GranularityDay,
	enums.GranularityWeek,
	enums.GranularityMonth,
	enums.GranularityQuarter,
	enums.GranularityYear,
}

var allWeekdays = []enums.Weekday{
	enums.WeekdayMonday,
	enums.WeekdayTuesday,
	enums.WeekdayWednesday,
	enums.WeekdayThursday,
	enums.WeekdayFriday,
	enums.WeekdaySaturday,
	enums.WeekdaySunday,
}

func TestGenerateIntervalsContiguous(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	end := time.Date(2024, 4, 2, 5, 0, 0, 0, time.UTC)

	for _, granularity := range allGranularities {
		for _, weekday := range allWeekdays {
			intervals := GenerateIntervals(granularity, start, end, weekday)
			require.NotEmptyf(t, intervals, "%s/%s produced no intervals", granularity, weekday)

			assert.True(t, intervals[0].Start.Equal(start))
			assert.True(t, intervals[len(intervals)-1].End.Equal(end))
			for i, iv := range intervals {
				assert.Truef(t, iv.Start.Before(iv.End), "%s/%s interval %d is empty", granularity, weekday, i)
				if i > 0 {
					assert.Truef(t, iv.Start.Equal(intervals[i-1].End),
						"%s/%s interval %d not contiguous", granularity, weekday, i)
				}
			}
		}
	}
}

func TestGenerateIntervalsWeekAlignment(t *testing.T) {
	// Wednesday start; the first bucket runs short up to the next aligned
	// week boundary.
	start := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)

	intervals := GenerateIntervals(enums.GranularityWeek, start, end, enums.WeekdayMonday)
	require.NotEmpty(t, intervals)
	assert.True(t, intervals[0].End.Equal(time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)))

	intervals = GenerateIntervals(enums.GranularityWeek, start, end, enums.WeekdaySunday)
	require.NotEmpty(t, intervals)
	assert.True(t, intervals[0].End.Equal(time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)))
}

func TestGenerateIntervalsFinalBucketClamped(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	intervals := GenerateIntervals(enums.GranularityHour, start, end, enums.WeekdayMonday)
	require.Len(t, intervals, 2)
	assert.Equal(t, time.Hour, intervals[0].End.Sub(intervals[0].Start))
	assert.Equal(t, 30*time.Minute, intervals[1].End.Sub(intervals[1].Start))
}

func TestGenerateIntervalsMonthKeepsTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	intervals := GenerateIntervals(enums.GranularityMonth, start, end, enums.WeekdayMonday)
	require.True(t, len(intervals) >= 2)
	assert.True(t, intervals[0].End.Equal(time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)))
	assert.True(t, intervals[1].End.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))
}

func TestFormatInterval(t *testing.T) {
	iv := Interval{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2024-01-01T00:00:00Z/2024-01-02T00:00:00Z", FormatInterval(iv))
}

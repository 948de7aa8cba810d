package enums

import (
	"fmt"
	"time"
)

// Weekday names the first day of the week for week-bucket alignment.
type Weekday string

const (
	WeekdayMonday    Weekday = "Monday"
	WeekdayTuesday   Weekday = "Tuesday"
	WeekdayWednesday Weekday = "Wednesday"
	WeekdayThursday  Weekday = "Thursday"
	WeekdayFriday    Weekday = "Friday"
	WeekdaySaturday  Weekday = "Saturday"
	WeekdaySunday    Weekday = "Sunday"
)

var validWeekdays = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

// IsValid reports whether the value matches the canonical weekday enum.
func (w Weekday) IsValid() bool {
	for _, candidate := range validWeekdays {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWeekday converts the raw string to Weekday.
func ParseWeekday(value string) (Weekday, error) {
	for _, candidate := range validWeekdays {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid weekday %q", value)
}

// Offset returns the Monday-based ordinal (Monday=0 .. Sunday=6).
func (w Weekday) Offset() int {
	for i, candidate := range validWeekdays {
		if candidate == w {
			return i
		}
	}
	return 0
}

// Go converts the value to the standard library weekday.
func (w Weekday) Go() time.Weekday {
	switch w {
	case WeekdaySunday:
		return time.Sunday
	case WeekdayTuesday:
		return time.Tuesday
	case WeekdayWednesday:
		return time.Wednesday
	case WeekdayThursday:
		return time.Thursday
	case WeekdayFriday:
		return time.Friday
	case WeekdaySaturday:
		return time.Saturday
	default:
		return time.Monday
	}
}

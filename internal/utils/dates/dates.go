package dates

import (
	"fmt"
	"time"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
)

// isoLayout is the only accepted calendar-date format.
const isoLayout = "2006-01-02"

// ParseISODate parses a strict ISO 8601 calendar date (YYYY-MM-DD). The parsed
// time is anchored at UTC midnight so day arithmetic stays exact.
func ParseISODate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(isoLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid ISO 8601 date", apperrors.ErrInvalidDate, value)
	}
	return t, nil
}

// DaysBetween returns the exact number of calendar days from start to end.
// Both times are expected at UTC midnight; the result is negative when end
// precedes start.
func DaysBetween(start, end time.Time) int64 {
	return int64(end.Sub(start).Hours() / 24)
}

// Days30360 counts days from start to end under the American 30/360
// convention: every month has 30 days and the year 360. A start day of 31 is
// clamped to 30; an end day of 31 is clamped to 30 only when the start day is
// already 30 or more. Never negative.
func Days30360(start, end time.Time) int64 {
	startDay := start.Day()
	endDay := end.Day()

	if startDay == 31 {
		startDay = 30
	}
	if endDay == 31 && startDay >= 30 {
		endDay = 30
	}

	days := int64(end.Year()-start.Year())*360 +
		int64(int(end.Month())-int(start.Month()))*30 +
		int64(endDay-startDay)

	if days < 0 {
		return 0
	}
	return days
}

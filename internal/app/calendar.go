package app

import (
	"fmt"
	"time"
)

// MonthBounds returns the half-open [start, end) boundaries for the given
// month: the first instant of the month and the first instant of the next.
// December rolls over to January of the following year. The returned values
// are naive wall-clock boundaries; the storage layer compares them against
// check-in instants reprojected into each property's timezone.
func MonthBounds(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month must be 1-12, got %d", month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start, end, nil
}

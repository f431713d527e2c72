package utils

import "time"

// -----------------------------------------------------------------------------

// DateLayout is the ISO date format used by the form, the API and the chart axis.
const DateLayout = "2006-01-02"

// -----------------------------------------------------------------------------

// TruncateToDate keeps the calendar date of t as UTC midnight.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------

// ParseDate parses an ISO date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

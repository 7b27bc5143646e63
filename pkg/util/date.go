package util

import "time"

const DayLayout = "2006-01-02"

// ParseDate tries plain calendar dates, then timestamps with a time
// component. Returns (t, true) if any worked. The source tables store dates
// with inconsistent time-of-day suffixes; only the calendar day matters.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DayString renders a time as its calendar day, discarding time-of-day.
func DayString(t time.Time) string {
	return t.Format(DayLayout)
}

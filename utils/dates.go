// utils/dates.go
package utils

import "time"

// DateLayout is the calendar-date format accepted on the wire.
const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDay reads a YYYY-MM-DD string as midnight of that calendar day in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}

// DayWindow returns the half-open interval [day, next day) around t's
// calendar day. The end is computed on the calendar, not as +24h.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := BeginningOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

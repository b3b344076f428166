// Package timewindow holds the pure date/time arithmetic behind the booking
// rules: parsing calendar dates and times of day, and computing the fixed
// seating window used for overlap detection.
package timewindow

import (
	"fmt"
	"time"
)

// SeatingDuration is the implicit length of every reservation.
const SeatingDuration = 2 * time.Hour

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ParseDate -> midnight UTC for a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// ParseClock -> offset from midnight for a "HH:MM" time of day.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// At -> the wall-clock instant of a clock offset on a given date.
func At(date time.Time, clock time.Duration) time.Time {
	return date.Add(clock)
}

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// SeatingWindow -> the 2h window beginning at start.
func SeatingWindow(start time.Time) Window {
	return Window{Start: start, End: start.Add(SeatingDuration)}
}

// Overlaps -> true when the two half-open intervals share any instant.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Midnight -> t truncated to the start of its day in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

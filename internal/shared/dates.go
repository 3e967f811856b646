package shared

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for every per-day key.
const DateLayout = "2006-01-02"

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// FormatDate formats t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current calendar day in loc according to clock.
//
// A nil clock uses [time.Now] and a nil loc uses [time.Local].
func Today(clock Clock, loc *time.Location) string {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return FormatDate(clock().In(loc))
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FixedClock returns a [Clock] that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

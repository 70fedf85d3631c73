// internal/notify/quiet.go
package notify

import (
	"fmt"
	"time"
)

// Clock is a time of day at minute resolution.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseClock parses "HH:MM" (24-hour).
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return Clock{}, fmt.Errorf("parse clock %q: out of range", s)
	}
	return c, nil
}

// MustClock is ParseClock for compile-time constants; panics on bad input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// minutes returns the clock as minutes past midnight.
func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// Window is a quiet-hours span between two times of day. A window whose
// start is not before its end wraps past midnight.
type Window struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// Contains reports whether the wall-clock time of day of now falls inside
// the window. Both bounds are inclusive. Pure: the only time read is the
// argument.
func (w Window) Contains(now time.Time) bool {
	cur := now.Hour()*60 + now.Minute()
	start, end := w.Start.minutes(), w.End.minutes()
	if start < end {
		return start <= cur && cur <= end
	}
	// Wraps midnight, e.g. 22:00-07:00.
	return cur >= start || cur <= end
}

package appointment

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// EndOfDay is the only clock value past 23:59; it can close a window or a
	// slot but never open one.
	EndOfDay Clock = 24 * 60
)

// Clock is a time of day in minutes since midnight.
type Clock int

func ParseClock(s string) (Clock, error) {
	if s == "24:00" {
		return EndOfDay, nil
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil || len(s) != len(ClockLayout) {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Interval is a half-open [Start, End) range within one day.
type Interval struct {
	Start Clock
	End   Clock
}

func (i Interval) Valid() bool {
	return i.Start >= 0 && i.Start < i.End && i.End <= EndOfDay
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Contains(o Interval) bool {
	return o.Start >= i.Start && o.End <= i.End
}

func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC, the form every
// date column is stored in.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DayOf returns the calendar date t falls on in its own location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

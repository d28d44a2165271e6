package validators

import (
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

// IsClock accepts zero padded HH:MM between 00:00 and 23:59. The closing
// value 24:00 is accepted only when allowEndOfDay is set.
func IsClock(s string, allowEndOfDay bool) bool {
	c, err := domain.ParseClock(s)
	if err != nil {
		return false
	}
	return c < domain.EndOfDay || allowEndOfDay
}

func IsDate(s string) bool {
	_, err := domain.ParseDate(s)
	return err == nil
}

// IsWindow reports whether start and end form a non-empty range within a day.
func IsWindow(start, end string) bool {
	if !IsClock(start, false) || !IsClock(end, true) {
		return false
	}
	iv, err := domain.ParseInterval(start, end)
	return err == nil && iv.Valid()
}

func IsTimezone(tz string) bool {
	return timezone.IsValid(tz)
}

// IsPastDate reports whether date lies before today in the given timezone.
func IsPastDate(date time.Time, tz string, now time.Time) bool {
	return date.Before(domain.DayOf(timezone.In(now, tz)))
}

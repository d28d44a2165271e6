package timezone

import "time"

// DefaultTimezone applies to gyms created without one.
const DefaultTimezone = "Europe/Istanbul"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// In converts t to the gym's timezone.
func In(t time.Time, tz string) time.Time {
	return t.In(Location(tz))
}

package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsClock(t *testing.T) {
	assert.True(t, IsClock("00:00", false))
	assert.True(t, IsClock("23:59", false))
	assert.False(t, IsClock("24:00", false))
	assert.True(t, IsClock("24:00", true))
	assert.False(t, IsClock("9:00", false))
	assert.False(t, IsClock("12:60", false))
	assert.False(t, IsClock("", false))
}

func TestIsWindow(t *testing.T) {
	assert.True(t, IsWindow("09:00", "10:00"))
	assert.True(t, IsWindow("22:00", "24:00"))
	assert.False(t, IsWindow("10:00", "10:00"))
	assert.False(t, IsWindow("10:00", "09:00"))
	assert.False(t, IsWindow("24:00", "24:00"))
}

func TestIsDateAndTimezone(t *testing.T) {
	assert.True(t, IsDate("2026-02-28"))
	assert.False(t, IsDate("2026-02-30"))
	assert.False(t, IsDate("05/03/2026"))

	assert.True(t, IsTimezone("Europe/Istanbul"))
	assert.False(t, IsTimezone("Mars/Olympus"))
}

func TestIsPastDate(t *testing.T) {
	now := time.Date(2026, 3, 4, 22, 30, 0, 0, time.UTC)
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsPastDate(day, "UTC", now))
	assert.True(t, IsPastDate(day, "Europe/Istanbul", now))
}

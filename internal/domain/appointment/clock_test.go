package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", EndOfDay, false},
		{"9:30", 0, true},
		{"25:00", 0, true},
		{"09:60", 0, true},
		{"", 0, true},
		{"09:30:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestIntervalOverlapIsStrict(t *testing.T) {
	a := Interval{Start: 540, End: 570}

	assert.True(t, a.Overlaps(Interval{Start: 560, End: 600}))
	assert.True(t, a.Overlaps(Interval{Start: 500, End: 545}))
	assert.True(t, a.Overlaps(Interval{Start: 540, End: 570}))
	assert.False(t, a.Overlaps(Interval{Start: 570, End: 600}), "touching end is free")
	assert.False(t, a.Overlaps(Interval{Start: 510, End: 540}), "touching start is free")
}

func TestIntervalValid(t *testing.T) {
	assert.True(t, Interval{Start: 0, End: EndOfDay}.Valid())
	assert.False(t, Interval{Start: 600, End: 600}.Valid())
	assert.False(t, Interval{Start: 600, End: 540}.Valid())
	assert.False(t, Interval{Start: 1400, End: EndOfDay + 30}.Valid())
}

func TestDayOfKeepsLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	late := time.Date(2026, 3, 10, 1, 30, 0, 0, loc)

	assert.Equal(t, "2026-03-10", FormatDate(DayOf(late)))
	assert.Equal(t, time.UTC, DayOf(late).Location())
}

package appointment

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	i, err := ParseInterval(start, end)
	require.NoError(t, err)
	return i
}

func slotStrings(seq []Interval) []TimeSlot {
	out := make([]TimeSlot, 0, len(seq))
	for _, s := range seq {
		out = append(out, s.Slot())
	}
	return out
}

func TestSlotsTilesWindowBackToBack(t *testing.T) {
	windows := []Interval{mustInterval(t, "09:00", "10:00")}

	got := slotStrings(slices.Collect(Slots(windows, nil, 30)))

	assert.Equal(t, []TimeSlot{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "09:30", EndTime: "10:00"},
	}, got)
}

func TestSlotsSkipsBookedInterval(t *testing.T) {
	windows := []Interval{mustInterval(t, "09:00", "10:00")}
	busy := []Interval{mustInterval(t, "09:00", "09:30")}

	got := slotStrings(slices.Collect(Slots(windows, busy, 30)))

	assert.Equal(t, []TimeSlot{{StartTime: "09:30", EndTime: "10:00"}}, got)
}

func TestSlotsDropsPartialTail(t *testing.T) {
	windows := []Interval{mustInterval(t, "09:00", "10:40")}

	got := slices.Collect(Slots(windows, nil, 45))

	require.Len(t, got, 2)
	assert.Equal(t, "10:30", got[1].End.String())
}

func TestSlotsBusyIntervalNotAlignedToGrid(t *testing.T) {
	windows := []Interval{mustInterval(t, "08:00", "11:00")}
	busy := []Interval{mustInterval(t, "08:45", "09:15")}

	got := slotStrings(slices.Collect(Slots(windows, busy, 60)))

	assert.Equal(t, []TimeSlot{
		{StartTime: "10:00", EndTime: "11:00"},
	}, got)
}

func TestSlotsOrdersWindowsByStart(t *testing.T) {
	windows := []Interval{
		mustInterval(t, "14:00", "15:00"),
		mustInterval(t, "08:00", "09:00"),
	}

	got := slotStrings(slices.Collect(Slots(windows, nil, 60)))

	assert.Equal(t, []TimeSlot{
		{StartTime: "08:00", EndTime: "09:00"},
		{StartTime: "14:00", EndTime: "15:00"},
	}, got)
	assert.Equal(t, "14:00", windows[0].Start.String(), "input must not be reordered")
}

func TestSlotsProperties(t *testing.T) {
	windows := []Interval{
		mustInterval(t, "06:00", "09:10"),
		mustInterval(t, "12:05", "18:00"),
	}
	busy := []Interval{
		mustInterval(t, "07:00", "07:20"),
		mustInterval(t, "13:00", "14:30"),
	}

	for _, d := range []int{15, 20, 30, 45, 50, 60, 90} {
		seq := Slots(windows, busy, d)
		first := slices.Collect(seq)
		second := slices.Collect(seq)
		assert.Equal(t, first, second, "sequence must be restartable (d=%d)", d)

		for i, s := range first {
			assert.Equal(t, Clock(d), s.End-s.Start)

			var owner *Interval
			for wi := range windows {
				if windows[wi].Contains(s) {
					owner = &windows[wi]
				}
			}
			require.NotNil(t, owner, "slot %v outside every window", s)
			assert.Zero(t, int(s.Start-owner.Start)%d, "slot %v not on the window grid", s)

			for _, b := range busy {
				assert.False(t, s.Overlaps(b))
			}
			for _, other := range first[i+1:] {
				assert.False(t, s.Overlaps(other))
				assert.Less(t, s.Start, other.Start)
			}
		}
	}
}

func TestSlotsStopsWhenConsumerStops(t *testing.T) {
	windows := []Interval{mustInterval(t, "00:00", "24:00")}

	n := 0
	for range Slots(windows, nil, 15) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSlotsIgnoresNonPositiveDuration(t *testing.T) {
	windows := []Interval{mustInterval(t, "09:00", "10:00")}
	assert.Empty(t, slices.Collect(Slots(windows, nil, 0)))
}

func TestFits(t *testing.T) {
	windows := []Interval{mustInterval(t, "09:00", "10:00"), mustInterval(t, "14:00", "16:00")}

	assert.True(t, Fits(mustInterval(t, "09:00", "10:00"), windows))
	assert.True(t, Fits(mustInterval(t, "14:30", "15:30"), windows))
	assert.False(t, Fits(mustInterval(t, "09:30", "10:30"), windows))
	assert.False(t, Fits(mustInterval(t, "11:00", "11:30"), windows))
}

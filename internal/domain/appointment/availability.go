package appointment

import (
	"cmp"
	"iter"
	"slices"
	"time"
)

type AvailabilityInput struct {
	TrainerID uint
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (i Interval) Slot() TimeSlot {
	return TimeSlot{StartTime: i.Start.String(), EndTime: i.End.String()}
}

// Slots tiles every window back-to-back with slots of the given length,
// starting at the window start, and drops any slot overlapping a busy
// interval. Windows are visited in ascending start order. The sequence holds
// no state between runs; ranging over it again yields the same slots.
func Slots(windows []Interval, busy []Interval, durationMinutes int) iter.Seq[Interval] {
	ordered := slices.Clone(windows)
	slices.SortStableFunc(ordered, func(a, b Interval) int {
		return cmp.Compare(a.Start, b.Start)
	})

	return func(yield func(Interval) bool) {
		if durationMinutes <= 0 {
			return
		}
		for _, w := range ordered {
			if !w.Valid() {
				continue
			}
			for start := w.Start; start.Add(durationMinutes) <= w.End; start = start.Add(durationMinutes) {
				slot := Interval{Start: start, End: start.Add(durationMinutes)}
				if overlapsAny(slot, busy) {
					continue
				}
				if !yield(slot) {
					return
				}
			}
		}
	}
}

func overlapsAny(slot Interval, busy []Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

// Fits reports whether slot lies entirely inside one of the windows.
func Fits(slot Interval, windows []Interval) bool {
	for _, w := range windows {
		if w.Valid() && w.Contains(slot) {
			return true
		}
	}
	return false
}

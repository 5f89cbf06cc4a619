package availability

import (
	"cmp"
	"fmt"
	"slices"
)

// Interval is a run of available time on one weekday.
// StartTime is inclusive and EndTime exclusive, both on 30-minute boundaries.
type Interval struct {
	Day         Weekday `json:"day"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	IsRecurring bool    `json:"isRecurring"`
}

// NewInterval creates a recurring interval covering slot boundaries [start, end).
func NewInterval(day Weekday, start, end int) Interval {
	return Interval{
		Day:         day,
		StartTime:   BoundaryTime(start),
		EndTime:     BoundaryTime(end),
		IsRecurring: true,
	}
}

// Slots resolves the interval to slot boundaries [start, end).
// ok is false if the day or either time is not usable.
func (iv Interval) Slots() (start, end int, ok bool) {
	if !iv.Day.Valid() {
		return 0, 0, false
	}
	start, ok = StartSlot(iv.StartTime)
	if !ok {
		return 0, 0, false
	}
	end, ok = EndSlot(iv.EndTime)
	if !ok || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// Duration returns the interval length in minutes, counting an EndOfDay run as reaching midnight.
func (iv Interval) Duration() int {
	start, end, ok := iv.Slots()
	if !ok {
		return 0
	}
	return (end - start) * SlotMinutes
}

// String returns e.g. "MONDAY 09:00-17:00".
func (iv Interval) String() string {
	return fmt.Sprintf("%s %s-%s", iv.Day, iv.StartTime, iv.EndTime)
}

// SortIntervals orders intervals by day, then start time.
func SortIntervals(intervals []Interval) {
	slices.SortStableFunc(intervals, func(a, b Interval) int {
		if c := cmp.Compare(a.Day, b.Day); c != 0 {
			return c
		}
		return cmp.Compare(a.StartTime, b.StartTime)
	})
}

// TotalMinutes sums the durations of the given intervals.
func TotalMinutes(intervals []Interval) int {
	total := 0
	for _, iv := range intervals {
		total += iv.Duration()
	}
	return total
}

// Package availability defines the core domain types for weekgrid.
package availability

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrInvalidWeekday    = errors.New("invalid weekday")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidPreset     = errors.New("preset must be MORNING, AFTERNOON, EVENING or FULL")
	ErrEmptyProvider     = errors.New("provider id cannot be empty")
)

const (
	// DaysPerWeek is the number of weekday rows in the grid.
	DaysPerWeek = 7
	// SlotMinutes is the length of one slot.
	SlotMinutes = 30
	// SlotsPerDay is 24 hours * 2 slots per hour = 48 slots.
	SlotsPerDay = 48
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// EndOfDay is the end time used for a run that reaches midnight.
	// Slot 48 does not exist, so the day closes one minute early instead of rolling over.
	EndOfDay = "23:59"
)

// Weekday is a day of the recurring week. The week starts on Saturday.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayNames = [DaysPerWeek]string{
	"SATURDAY", "SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY",
}

var weekdayShortNames = [DaysPerWeek]string{
	"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri",
}

// Weekdays returns all days in week order.
func Weekdays() []Weekday {
	days := make([]Weekday, DaysPerWeek)
	for i := range days {
		days[i] = Weekday(i)
	}
	return days
}

// Valid returns true if d is one of the seven weekdays.
func (d Weekday) Valid() bool {
	return d >= Saturday && d <= Friday
}

// String returns the upper-case day name, e.g. "MONDAY".
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ShortName returns the three letter name, e.g. "Mon".
func (d Weekday) ShortName() string {
	if !d.Valid() {
		return ""
	}
	return weekdayShortNames[d]
}

// ParseWeekday parses a full or short day name, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for i := 0; i < DaysPerWeek; i++ {
		if strings.EqualFold(s, weekdayNames[i]) || strings.EqualFold(s, weekdayShortNames[i]) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// MarshalText encodes the weekday as its name.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
	}
	return []byte(weekdayNames[d]), nil
}

// UnmarshalText decodes a weekday name.
func (d *Weekday) UnmarshalText(b []byte) error {
	w, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = w
	return nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	h, m, ok := parseClock(t)
	if !ok {
		return 0
	}
	return h*60 + m
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SlotIndex returns the slot that starts at hour:minute.
func SlotIndex(hour, minute int) int {
	idx := hour * 2
	if minute == 30 {
		idx++
	}
	return idx
}

// SlotStart returns the start time label of a slot, e.g. slot 19 → "09:30".
func SlotStart(slot int) string {
	return MinutesToTime(slot * SlotMinutes)
}

// SlotEnd returns the exclusive end time of a slot.
// The last slot of the day ends at EndOfDay.
func SlotEnd(slot int) string {
	if slot+1 >= SlotsPerDay {
		return EndOfDay
	}
	return SlotStart(slot + 1)
}

// BoundaryTime returns the time label of a slot boundary in [0, 48].
// Boundary 48 is the end of the day.
func BoundaryTime(boundary int) string {
	if boundary >= SlotsPerDay {
		return EndOfDay
	}
	return SlotStart(boundary)
}

// StartSlot resolves an inclusive start time to a slot index.
// Only "HH:00" and "HH:30" with HH in 00-23 are accepted.
func StartSlot(t string) (int, bool) {
	h, m, ok := parseClock(t)
	if !ok || h > 23 || (m != 0 && m != 30) {
		return 0, false
	}
	return SlotIndex(h, m), true
}

// EndSlot resolves an exclusive end time to a slot boundary in [0, 48].
// EndOfDay and "24:00" both mean the end of the day.
func EndSlot(t string) (int, bool) {
	if t == EndOfDay || t == "24:00" {
		return SlotsPerDay, true
	}
	return StartSlot(t)
}

// ValidateTime checks that t is a wall-clock "HH:MM" value.
func ValidateTime(t string) error {
	h, _, ok := parseClock(t)
	if !ok || h > 23 {
		return fmt.Errorf("%w, got %q", ErrInvalidTimeFormat, t)
	}
	return nil
}

func parseClock(t string) (hour, minute int, ok bool) {
	if len(t) != 5 || t[2] != ':' {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, 0, false
		}
	}
	hour = int(t[0]-'0')*10 + int(t[1]-'0')
	minute = int(t[3]-'0')*10 + int(t[4]-'0')
	if hour > 24 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, 0, false
	}
	return hour, minute, true
}

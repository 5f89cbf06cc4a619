package availability

import "strings"

// Row holds the 48 slots of one weekday.
type Row [SlotsPerDay]bool

// Matrix is the weekly availability grid, one Row per weekday.
// It is a value type: copying a Matrix copies every cell, and every mutating
// operation returns a new Matrix plus whether anything changed.
type Matrix [DaysPerWeek]Row

// Cell addresses one slot of the grid.
type Cell struct {
	Day  Weekday
	Slot int
}

// Valid returns true if the cell lies inside the grid.
func (c Cell) Valid() bool {
	return c.Day.Valid() && c.Slot >= 0 && c.Slot < SlotsPerDay
}

// SlotRange is an inclusive range of slot indices.
type SlotRange struct {
	Min int
	Max int
}

// NewSlotRange builds a range from two slots in any order, clamped to the day.
func NewSlotRange(a, b int) SlotRange {
	if a > b {
		a, b = b, a
	}
	return SlotRange{Min: clampSlot(a), Max: clampSlot(b)}
}

// FullDay covers every slot of a day.
var FullDay = SlotRange{Min: 0, Max: SlotsPerDay - 1}

// Contains reports whether slot lies inside the range.
func (r SlotRange) Contains(slot int) bool {
	return slot >= r.Min && slot <= r.Max
}

// Len returns the number of slots in the range.
func (r SlotRange) Len() int {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

// Clamp moves slot into the range.
func (r SlotRange) Clamp(slot int) int {
	if slot < r.Min {
		return r.Min
	}
	if slot > r.Max {
		return r.Max
	}
	return slot
}

// DayRange is an inclusive range of weekdays.
type DayRange struct {
	Min Weekday
	Max Weekday
}

// Contains reports whether day lies inside the range.
func (r DayRange) Contains(day Weekday) bool {
	return day >= r.Min && day <= r.Max
}

// Rect is a rectangle between two corner cells, in any orientation.
type Rect struct {
	From Cell
	To   Cell
}

// Normalize returns the day and slot spans covered by the rectangle.
func (r Rect) Normalize() (DayRange, SlotRange) {
	dMin, dMax := r.From.Day, r.To.Day
	if dMin > dMax {
		dMin, dMax = dMax, dMin
	}
	return DayRange{Min: dMin, Max: dMax}, NewSlotRange(r.From.Slot, r.To.Slot)
}

// Contains reports whether c is inside the normalized rectangle.
func (r Rect) Contains(c Cell) bool {
	days, slots := r.Normalize()
	return days.Contains(c.Day) && slots.Contains(c.Slot)
}

// Get returns the value of a cell. Cells outside the grid read as false.
func (m Matrix) Get(c Cell) bool {
	if !c.Valid() {
		return false
	}
	return m[c.Day][c.Slot]
}

// Row returns a copy of one weekday's slots.
func (m Matrix) Row(day Weekday) Row {
	if !day.Valid() {
		return Row{}
	}
	return m[day]
}

// SetCell sets one cell. Out-of-range cells leave the matrix unchanged.
func (m Matrix) SetCell(c Cell, value bool) (Matrix, bool) {
	if !c.Valid() || m[c.Day][c.Slot] == value {
		return m, false
	}
	m[c.Day][c.Slot] = value
	return m, true
}

// SetCells sets every listed cell to value.
func (m Matrix) SetCells(cells []Cell, value bool) (Matrix, bool) {
	changed := false
	for _, c := range cells {
		var ok bool
		m, ok = m.SetCell(c, value)
		changed = changed || ok
	}
	return m, changed
}

// SetRect sets every cell with day in days and slot in slots.
func (m Matrix) SetRect(days DayRange, slots SlotRange, value bool) (Matrix, bool) {
	changed := false
	for d := days.Min; d <= days.Max; d++ {
		if !d.Valid() {
			continue
		}
		var ok bool
		m, ok = m.SetRange(d, slots, value)
		changed = changed || ok
	}
	return m, changed
}

// SetRange sets the slots of one day within slots.
func (m Matrix) SetRange(day Weekday, slots SlotRange, value bool) (Matrix, bool) {
	if !day.Valid() {
		return m, false
	}
	changed := false
	for s := clampSlot(slots.Min); s <= slots.Max && s < SlotsPerDay; s++ {
		if m[day][s] != value {
			m[day][s] = value
			changed = true
		}
	}
	return m, changed
}

// FillRange marks the slots of day within slots as available.
func (m Matrix) FillRange(day Weekday, slots SlotRange) (Matrix, bool) {
	return m.SetRange(day, slots, true)
}

// ClearRange marks the slots of day within slots as unavailable.
func (m Matrix) ClearRange(day Weekday, slots SlotRange) (Matrix, bool) {
	return m.SetRange(day, slots, false)
}

// PasteRow replaces a whole day with row.
func (m Matrix) PasteRow(day Weekday, row Row) (Matrix, bool) {
	if !day.Valid() || m[day] == row {
		return m, false
	}
	m[day] = row
	return m, true
}

// Count returns the number of available cells.
func (m Matrix) Count() int {
	n := 0
	for d := range m {
		n += m[d].Count()
	}
	return n
}

// DirtyDays returns the days whose rows differ from other.
func (m Matrix) DirtyDays(other Matrix) []Weekday {
	var days []Weekday
	for d := range m {
		if m[d] != other[d] {
			days = append(days, Weekday(d))
		}
	}
	return days
}

// String renders the matrix one row per day, '#' for available and '.' otherwise.
func (m Matrix) String() string {
	var b strings.Builder
	for d := range m {
		b.WriteString(Weekday(d).ShortName())
		b.WriteByte(' ')
		b.WriteString(m[d].String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Count returns the number of available slots in the row.
func (r Row) Count() int {
	n := 0
	for _, v := range r {
		if v {
			n++
		}
	}
	return n
}

// Empty reports whether no slot in the row is available.
func (r Row) Empty() bool {
	return r == Row{}
}

// String renders the row as 48 characters.
func (r Row) String() string {
	buf := make([]byte, SlotsPerDay)
	for i, v := range r {
		if v {
			buf[i] = '#'
		} else {
			buf[i] = '.'
		}
	}
	return string(buf)
}

func clampSlot(slot int) int {
	if slot < 0 {
		return 0
	}
	if slot >= SlotsPerDay {
		return SlotsPerDay - 1
	}
	return slot
}

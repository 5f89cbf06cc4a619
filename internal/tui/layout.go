package tui

import "github.com/javiermolinar/weekgrid/internal/availability"

const (
	timeColWidth = 6
	minColWidth  = 3
	maxColWidth  = 12

	titleHeight  = 1
	headerHeight = 1
	footerHeight = 3
)

// GridLayout maps terminal coordinates to grid cells for one window size,
// preset and scroll offset. It is rebuilt whenever any of those change.
type GridLayout struct {
	Left    int // x of the first day column
	Top     int // y of the first grid row
	HeaderY int
	ColW    int
	Rows    int // visible grid rows, 0 when the terminal is too small
	First   int // slot shown on the first row
	Range   availability.SlotRange
}

// NewGridLayout computes the layout for a width x height terminal showing
// range r scrolled down by scroll rows.
func NewGridLayout(width, height int, r availability.SlotRange, scroll int) GridLayout {
	l := GridLayout{
		Left:    timeColWidth,
		Top:     titleHeight + headerHeight,
		HeaderY: titleHeight,
		Range:   r,
		First:   r.Min,
	}

	colW := (width - timeColWidth) / availability.DaysPerWeek
	if colW < minColWidth {
		return l
	}
	l.ColW = min(colW, maxColWidth)

	rows := height - titleHeight - headerHeight - footerHeight
	if rows <= 0 {
		return l
	}
	l.Rows = min(rows, r.Len())
	l.First = r.Min + clampScroll(scroll, l.MaxScroll())
	return l
}

// MaxScroll returns the largest useful scroll offset.
func (l GridLayout) MaxScroll() int {
	return max(0, l.Range.Len()-l.Rows)
}

// Scroll returns the current scroll offset.
func (l GridLayout) Scroll() int {
	return l.First - l.Range.Min
}

// Width returns the width of the time column plus all day columns.
func (l GridLayout) Width() int {
	return l.Left + l.ColW*availability.DaysPerWeek
}

// CellAt implements editor.CellResolver.
func (l GridLayout) CellAt(x, y int) (availability.Cell, bool) {
	if l.Rows == 0 || y < l.Top || y >= l.Top+l.Rows {
		return availability.Cell{}, false
	}
	day, ok := l.dayAt(x)
	if !ok {
		return availability.Cell{}, false
	}
	return availability.Cell{Day: day, Slot: l.First + y - l.Top}, true
}

// DayHeaderAt returns the day whose heading is at (x, y).
func (l GridLayout) DayHeaderAt(x, y int) (availability.Weekday, bool) {
	if l.ColW == 0 || y != l.HeaderY {
		return 0, false
	}
	return l.dayAt(x)
}

// Slots returns the slot shown on each visible row.
func (l GridLayout) Slots() []int {
	slots := make([]int, l.Rows)
	for i := range slots {
		slots[i] = l.First + i
	}
	return slots
}

// Visible reports whether slot is on screen.
func (l GridLayout) Visible(slot int) bool {
	return slot >= l.First && slot < l.First+l.Rows
}

func (l GridLayout) dayAt(x int) (availability.Weekday, bool) {
	if x < l.Left || x >= l.Width() {
		return 0, false
	}
	return availability.Weekday((x - l.Left) / l.ColW), true
}

func clampScroll(scroll, maxScroll int) int {
	return max(0, min(scroll, maxScroll))
}

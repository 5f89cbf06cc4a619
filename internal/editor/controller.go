package editor

import "github.com/javiermolinar/weekgrid/internal/availability"

// State is the gesture state of the Controller.
type State int

const (
	StateIdle State = iota
	StatePainting
	StateRectSelecting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePainting:
		return "painting"
	case StateRectSelecting:
		return "rect"
	default:
		return "unknown"
	}
}

// CellResolver maps screen coordinates to grid cells.
// ok is false when the coordinates are not over a cell.
type CellResolver interface {
	CellAt(x, y int) (cell availability.Cell, ok bool)
}

// PointerEvent is a press, motion or release at screen coordinates.
// Modifier selects rectangle mode on press.
type PointerEvent struct {
	X, Y     int
	Modifier bool
}

// Preview describes the pending rectangle of a RectSelecting gesture.
type Preview struct {
	Days   availability.DayRange
	Slots  availability.SlotRange
	Action bool
}

// Contains reports whether c falls inside the pending rectangle.
func (p Preview) Contains(c availability.Cell) bool {
	return p.Days.Contains(c.Day) && p.Slots.Contains(c.Slot)
}

// Controller turns pointer gestures into matrix mutations.
//
// A press records action = !value(press cell). Painting applies action to
// every newly visited cell as the pointer moves. Rectangle mode tracks the
// corner under the pointer and applies action to the whole rectangle on
// release. The matrix seen at press is recorded as one history entry when the
// gesture ends having changed something, so a gesture undoes as a unit and a
// cancelled or no-op gesture leaves the history untouched.
//
// Cells are always resolved from the current coordinates, never from where the
// gesture started.
type Controller struct {
	session  *Session
	resolver CellResolver

	state   State
	action  bool
	before  availability.Matrix
	label   string
	last    availability.Cell
	anchor  availability.Cell
	corner  availability.Cell
	changed bool
}

// NewController creates a controller for a session.
func NewController(session *Session, resolver CellResolver) *Controller {
	return &Controller{session: session, resolver: resolver}
}

// SetResolver swaps the coordinate resolver, e.g. after a resize or scroll.
func (c *Controller) SetResolver(r CellResolver) {
	c.resolver = r
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Active returns true while a gesture is in progress.
func (c *Controller) Active() bool {
	return c.state != StateIdle
}

// Preview returns the pending rectangle while in RectSelecting.
func (c *Controller) Preview() (Preview, bool) {
	if c.state != StateRectSelecting {
		return Preview{}, false
	}
	days, slots := availability.Rect{From: c.anchor, To: c.corner}.Normalize()
	return Preview{Days: days, Slots: slots, Action: c.action}, true
}

// PointerDown starts a gesture at the cell under the pointer.
// Returns false if the pointer is not over a cell.
func (c *Controller) PointerDown(ev PointerEvent) bool {
	cell, ok := c.resolve(ev)
	if !ok {
		return false
	}
	return c.PressCell(cell, ev.Modifier)
}

// PointerMove continues the gesture. Returns true if the matrix or preview changed.
func (c *Controller) PointerMove(ev PointerEvent) bool {
	if c.state == StateIdle {
		return false
	}
	cell, ok := c.resolve(ev)
	if !ok {
		return false
	}
	return c.MoveCell(cell)
}

// PointerUp ends the gesture, resolving the release position one last time.
// Returns true if the gesture changed the matrix.
func (c *Controller) PointerUp(ev PointerEvent) bool {
	if c.state == StateIdle {
		return false
	}
	if cell, ok := c.resolve(ev); ok {
		c.MoveCell(cell)
	}
	return c.Release()
}

// PointerCancel aborts the gesture. Painted cells stay painted and undo as
// one entry; a pending rectangle is discarded.
func (c *Controller) PointerCancel() {
	if c.state == StatePainting && c.changed {
		c.session.record(c.label, c.before)
	}
	c.reset()
}

// PressCell starts a gesture at cell. rect selects rectangle mode.
// A gesture still in progress is released first.
func (c *Controller) PressCell(cell availability.Cell, rect bool) bool {
	if !cell.Valid() {
		return false
	}
	if c.state != StateIdle {
		c.Release()
	}

	m := c.session.Matrix()
	c.before = m
	c.action = !m.Get(cell)
	c.anchor = cell
	c.corner = cell
	c.last = cell
	c.changed = false

	if rect {
		c.label = "Rectangle"
		c.state = StateRectSelecting
		return true
	}

	c.label = "Paint"
	c.state = StatePainting
	c.paint(cell)
	return true
}

// MoveCell continues the gesture over cell.
func (c *Controller) MoveCell(cell availability.Cell) bool {
	if !cell.Valid() {
		return false
	}
	switch c.state {
	case StatePainting:
		if cell == c.last {
			return false
		}
		c.last = cell
		return c.paint(cell)
	case StateRectSelecting:
		if cell == c.corner {
			return false
		}
		c.corner = cell
		return true
	default:
		return false
	}
}

// Release commits the gesture and returns the controller to Idle.
// Returns true if the gesture changed the matrix.
func (c *Controller) Release() bool {
	switch c.state {
	case StateRectSelecting:
		days, slots := availability.Rect{From: c.anchor, To: c.corner}.Normalize()
		action := c.action
		if c.session.apply(func(m availability.Matrix) (availability.Matrix, bool) {
			return m.SetRect(days, slots, action)
		}) {
			c.changed = true
		}
	case StatePainting:
	default:
		return false
	}
	if c.changed {
		c.session.record(c.label, c.before)
	}
	changed := c.changed
	c.reset()
	return changed
}

func (c *Controller) paint(cell availability.Cell) bool {
	action := c.action
	changed := c.session.apply(func(m availability.Matrix) (availability.Matrix, bool) {
		return m.SetCell(cell, action)
	})
	if changed {
		c.changed = true
	}
	return changed
}

func (c *Controller) resolve(ev PointerEvent) (availability.Cell, bool) {
	if c.resolver == nil {
		return availability.Cell{}, false
	}
	return c.resolver.CellAt(ev.X, ev.Y)
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.changed = false
	c.action = false
	c.before = availability.Matrix{}
	c.label = ""
	c.anchor = availability.Cell{}
	c.corner = availability.Cell{}
	c.last = availability.Cell{}
}

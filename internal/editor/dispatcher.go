package editor

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// Command errors. Rejected commands leave the session unchanged.
var (
	ErrNoActiveDay    = errors.New("select a day first")
	ErrClipboardEmpty = errors.New("nothing copied yet")
)

// Result describes the outcome of a toolbar command.
type Result struct {
	Changed bool
	Notice  string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSystemClipboard mirrors copied days to the OS clipboard as text.
func WithSystemClipboard(write func(string) error) Option {
	return func(d *Dispatcher) {
		d.writeClipboard = write
	}
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher maps toolbar commands onto the session.
// Any gesture still in progress is committed before a command runs.
type Dispatcher struct {
	session        *Session
	controller     *Controller
	writeClipboard func(string) error
	logger         *zap.Logger
}

// NewDispatcher creates a dispatcher. controller may be nil.
func NewDispatcher(session *Session, controller *Controller, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		session:    session,
		controller: controller,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Undo restores the state before the last committed mutation.
// An empty history is not an error.
func (d *Dispatcher) Undo() (Result, error) {
	d.settle()
	entry, ok := d.session.Undo()
	if !ok {
		return Result{Notice: "Nothing to undo"}, nil
	}
	return Result{Changed: true, Notice: "Undo: " + entry.Description}, nil
}

// Fill marks the active day available within the visible range.
func (d *Dispatcher) Fill() (Result, error) {
	return d.setActiveDay(true)
}

// Clear marks the active day unavailable within the visible range.
func (d *Dispatcher) Clear() (Result, error) {
	return d.setActiveDay(false)
}

func (d *Dispatcher) setActiveDay(value bool) (Result, error) {
	d.settle()
	day, ok := d.session.ActiveDay()
	if !ok {
		return Result{}, ErrNoActiveDay
	}
	r := d.session.VisibleRange()
	verb := "Cleared"
	if value {
		verb = "Filled"
	}
	changed := d.session.applyRecorded(fmt.Sprintf("%s %s", verb, day), func(m availability.Matrix) (availability.Matrix, bool) {
		return m.SetRange(day, r, value)
	})
	span := fmt.Sprintf("%s-%s", availability.SlotStart(r.Min), availability.BoundaryTime(r.Max+1))
	if !changed {
		return Result{Notice: fmt.Sprintf("%s %s already %s", day, span, stateWord(value))}, nil
	}
	return Result{Changed: true, Notice: fmt.Sprintf("%s %s %s", verb, day, span)}, nil
}

// Copy stores the active day's row in the clipboard.
func (d *Dispatcher) Copy() (Result, error) {
	d.settle()
	day, ok := d.session.ActiveDay()
	if !ok {
		return Result{}, ErrNoActiveDay
	}
	row := d.session.Matrix().Row(day)
	d.session.setClipboard(row)

	if d.writeClipboard != nil {
		if err := d.writeClipboard(FormatDay(day, row)); err != nil {
			d.logger.Debug("system clipboard unavailable", zap.Error(err))
		}
	}
	return Result{Notice: "Copied " + day.String()}, nil
}

// Paste overwrites the active day with the clipboard row.
func (d *Dispatcher) Paste() (Result, error) {
	d.settle()
	day, ok := d.session.ActiveDay()
	if !ok {
		return Result{}, ErrNoActiveDay
	}
	row, ok := d.session.Clipboard()
	if !ok {
		return Result{}, ErrClipboardEmpty
	}
	changed := d.session.applyRecorded("Paste "+day.String(), func(m availability.Matrix) (availability.Matrix, bool) {
		return m.PasteRow(day, row)
	})
	if !changed {
		return Result{Notice: day.String() + " already matches the clipboard"}, nil
	}
	return Result{Changed: true, Notice: "Pasted into " + day.String()}, nil
}

// ChangePreset switches the visible range. The matrix is never touched.
func (d *Dispatcher) ChangePreset(p availability.Preset) (Result, error) {
	if _, err := availability.ParsePreset(string(p)); err != nil {
		return Result{}, err
	}
	d.settle()
	if d.session.Preset() == p {
		return Result{}, nil
	}
	d.session.setPreset(p)
	return Result{Notice: p.Label()}, nil
}

// Replace swaps the whole matrix for the decoded intervals as one undoable step.
func (d *Dispatcher) Replace(description string, intervals []availability.Interval) (Result, error) {
	d.settle()
	next := availability.Decode(intervals)
	changed := d.session.applyRecorded(description, func(m availability.Matrix) (availability.Matrix, bool) {
		return next, m != next
	})
	if !changed {
		return Result{Notice: "No change"}, nil
	}
	return Result{Changed: true, Notice: description}, nil
}

func (d *Dispatcher) settle() {
	if d.controller != nil && d.controller.Active() {
		d.controller.Release()
	}
}

// FormatDay renders a row as "MONDAY 09:00-12:00, 14:00-17:00".
func FormatDay(day availability.Weekday, row availability.Row) string {
	var m availability.Matrix
	m, _ = m.PasteRow(day, row)
	intervals := availability.Encode(m)
	if len(intervals) == 0 {
		return day.String() + " unavailable"
	}
	spans := make([]string, len(intervals))
	for i, iv := range intervals {
		spans[i] = iv.StartTime + "-" + iv.EndTime
	}
	return day.String() + " " + strings.Join(spans, ", ")
}

func stateWord(value bool) string {
	if value {
		return "available"
	}
	return "unavailable"
}

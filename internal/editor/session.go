package editor

import (
	"errors"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// Session errors.
var (
	ErrSaveInProgress   = errors.New("save already in progress")
	ErrNoSaveInProgress = errors.New("no save in progress")
)

// Session holds the editable state of one provider's weekly availability.
//
// The working matrix is what the user sees and edits. The baseline is the
// matrix last loaded from or saved to the gateway; the session has unsaved
// changes whenever the two differ. All methods are meant to be called from a
// single goroutine (the UI loop); the gateway never touches a Session.
type Session struct {
	providerID string

	working  availability.Matrix
	baseline availability.Matrix

	history   *History
	clipboard *availability.Row

	activeDay    availability.Weekday
	hasActiveDay bool
	preset       availability.Preset

	saving  bool
	saveErr error
}

// NewSession creates an empty session for a provider.
func NewSession(providerID string, preset availability.Preset) *Session {
	if _, err := availability.ParsePreset(string(preset)); err != nil {
		preset = availability.PresetFull
	}
	return &Session{
		providerID: providerID,
		history:    NewHistory(DefaultMaxHistory),
		preset:     preset,
	}
}

// ProviderID returns the provider this session edits.
func (s *Session) ProviderID() string {
	return s.providerID
}

// Load replaces the session contents with decoded intervals.
// History is cleared; clipboard, active day and preset are kept.
func (s *Session) Load(intervals []availability.Interval) {
	m := availability.Decode(intervals)
	s.working = m
	s.baseline = m
	s.history.Clear()
	s.saveErr = nil
}

// Matrix returns the working matrix.
func (s *Session) Matrix() availability.Matrix {
	return s.working
}

// Baseline returns the last loaded or saved matrix.
func (s *Session) Baseline() availability.Matrix {
	return s.baseline
}

// Intervals encodes the working matrix.
func (s *Session) Intervals() []availability.Interval {
	return availability.Encode(s.working)
}

// HasChanges returns true if the working matrix differs from the baseline.
func (s *Session) HasChanges() bool {
	return s.working != s.baseline
}

// DirtyDays returns the days edited since the last load or save.
func (s *Session) DirtyDays() []availability.Weekday {
	return s.working.DirtyDays(s.baseline)
}

// CanUndo returns true if there are history entries.
func (s *Session) CanUndo() bool {
	return s.history.Len() > 0
}

// HistoryLen returns the number of undo entries.
func (s *Session) HistoryLen() int {
	return s.history.Len()
}

// Undo restores the most recent snapshot.
// Returns the undone entry and false if the history is empty.
func (s *Session) Undo() (HistoryEntry, bool) {
	entry, ok := s.history.Pop()
	if !ok {
		return HistoryEntry{}, false
	}
	s.working = entry.Matrix
	return entry, true
}

// ActiveDay returns the selected day, if any.
func (s *Session) ActiveDay() (availability.Weekday, bool) {
	return s.activeDay, s.hasActiveDay
}

// SelectDay sets the day bulk commands act on.
func (s *Session) SelectDay(day availability.Weekday) {
	if !day.Valid() {
		return
	}
	s.activeDay = day
	s.hasActiveDay = true
}

// ClearActiveDay removes the day selection.
func (s *Session) ClearActiveDay() {
	s.hasActiveDay = false
}

// Preset returns the active view range preset.
func (s *Session) Preset() availability.Preset {
	return s.preset
}

// VisibleRange returns the slot range of the active preset.
func (s *Session) VisibleRange() availability.SlotRange {
	return s.preset.Range()
}

// Clipboard returns the copied row, if any.
func (s *Session) Clipboard() (availability.Row, bool) {
	if s.clipboard == nil {
		return availability.Row{}, false
	}
	return *s.clipboard, true
}

// Saving returns true while a save is outstanding.
func (s *Session) Saving() bool {
	return s.saving
}

// SaveError returns the error of the last failed save, or nil.
func (s *Session) SaveError() error {
	return s.saveErr
}

// BeginSave marks a save as outstanding and returns what to send.
// The returned matrix must be handed back to CompleteSave.
func (s *Session) BeginSave() ([]availability.Interval, availability.Matrix, error) {
	if s.saving {
		return nil, availability.Matrix{}, ErrSaveInProgress
	}
	s.saving = true
	s.saveErr = nil
	return availability.Encode(s.working), s.working, nil
}

// CompleteSave records a successful save of m. Edits made while the save was
// outstanding remain unsaved because the baseline only moves to m.
func (s *Session) CompleteSave(m availability.Matrix) error {
	if !s.saving {
		return ErrNoSaveInProgress
	}
	s.saving = false
	s.saveErr = nil
	s.baseline = m
	return nil
}

// FailSave records a failed save. The working matrix is kept as is.
func (s *Session) FailSave(err error) error {
	if !s.saving {
		return ErrNoSaveInProgress
	}
	s.saving = false
	s.saveErr = err
	return nil
}

// Discard throws away unsaved edits and clears history.
func (s *Session) Discard() {
	s.working = s.baseline
	s.history.Clear()
}

func (s *Session) setPreset(p availability.Preset) {
	s.preset = p
}

func (s *Session) setClipboard(row availability.Row) {
	s.clipboard = &row
}

// record pushes a matrix taken before a mutation onto the history.
func (s *Session) record(description string, before availability.Matrix) {
	s.history.Push(description, before)
}

// apply runs a matrix operation against the working matrix.
func (s *Session) apply(op func(availability.Matrix) (availability.Matrix, bool)) bool {
	m, changed := op(s.working)
	if changed {
		s.working = m
	}
	return changed
}

// applyRecorded runs op and records a snapshot only if it changed something.
func (s *Session) applyRecorded(description string, op func(availability.Matrix) (availability.Matrix, bool)) bool {
	before := s.working
	if !s.apply(op) {
		return false
	}
	s.history.Push(description, before)
	return true
}

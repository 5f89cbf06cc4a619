// Package editor holds the in-memory editing session for a weekly availability grid:
// the undo history, the pointer gesture controller and the toolbar command dispatcher.
package editor

import "github.com/javiermolinar/weekgrid/internal/availability"

// DefaultMaxHistory is the number of undo snapshots kept per session.
const DefaultMaxHistory = 10

// HistoryEntry represents a single undo-able operation.
type HistoryEntry struct {
	Description string              // e.g., "Paint", "Fill SATURDAY"
	Matrix      availability.Matrix // The matrix before the operation
}

// History is a bounded stack of matrix snapshots. When full, the oldest entry is evicted.
// Matrices are values, so every entry is an independent copy.
type History struct {
	entries []HistoryEntry
	max     int
}

// NewHistory creates a history holding at most max entries.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &History{max: max}
}

// Push records a snapshot taken before a mutation.
func (h *History) Push(description string, m availability.Matrix) {
	if len(h.entries) >= h.max {
		// Drop oldest entry
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, HistoryEntry{Description: description, Matrix: m})
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	entry := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return entry, true
}

// Peek returns the most recent snapshot without removing it.
func (h *History) Peek() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Max returns the capacity.
func (h *History) Max() int {
	return h.max
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = nil
}

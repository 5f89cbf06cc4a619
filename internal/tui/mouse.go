package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/editor"
)

// handleMouseMsg routes mouse events to the gesture controller.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)

	if m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.scrollBy(-1), nil
	case tea.MouseButtonWheelDown:
		return m.scrollBy(1), nil
	}

	ev := editor.PointerEvent{
		X:        msg.X,
		Y:        msg.Y,
		Modifier: msg.Shift || msg.Alt || msg.Ctrl,
	}
	from := m.controller.State()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.quitArmed = false
		if day, ok := m.layout.DayHeaderAt(msg.X, msg.Y); ok {
			m.settleGesture()
			m.session.SelectDay(day)
			m.cursor.Day = day
			return m, m.setStatus("Selected " + day.String())
		}
		cell, ok := m.layout.CellAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.keyRect = false
		m.cursor = cell
		m.controller.PointerDown(ev)

	case tea.MouseActionMotion:
		if !m.controller.Active() || m.keyRect {
			return m, nil
		}
		if cell, ok := m.layout.CellAt(msg.X, msg.Y); ok {
			m.cursor = cell
		}
		m.controller.PointerMove(ev)

	case tea.MouseActionRelease:
		if !m.controller.Active() || m.keyRect {
			return m, nil
		}
		if cell, ok := m.layout.CellAt(msg.X, msg.Y); ok {
			m.cursor = cell
		}
		m.controller.PointerUp(ev)
	}

	LogGesture(from, m.controller.State(), m.cursor)
	return m, nil
}

// scrollBy moves the visible window by delta rows, keeping the cursor on screen.
func (m Model) scrollBy(delta int) Model {
	m.scroll += delta
	m.relayout()
	if m.layout.Rows > 0 && !m.layout.Visible(m.cursor.Slot) {
		last := m.layout.First + m.layout.Rows - 1
		m.cursor.Slot = max(m.layout.First, min(m.cursor.Slot, last))
		if m.keyRect {
			m.controller.MoveCell(m.cursor)
		}
	}
	return m
}

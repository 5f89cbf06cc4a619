package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/editor"
	"github.com/javiermolinar/weekgrid/internal/tui/commands"
)

// helpBindings lists the keys shown in the help modal.
var helpBindings = [][2]string{
	{"←↓↑→ / hjkl", "move cursor"},
	{"pgup / pgdown", "move a page"},
	{"space", "toggle cell"},
	{"v", "start / apply rectangle"},
	{"esc", "cancel rectangle, clear day"},
	{"enter", "select day"},
	{"f / x", "fill / clear selected day"},
	{"c / p", "copy / paste selected day"},
	{"u", "undo"},
	{"1-4 / tab", "view preset"},
	{"ctrl+s / w", "save"},
	{"r", "reload"},
	{"D", "discard changes"},
	{"/", "describe availability"},
	{"mouse", "drag to paint, shift+drag for rectangle"},
	{"q", "quit"},
}

const shortHelp = "space toggle · v rect · enter day · f/x fill/clear · c/p copy/paste · u undo · w save · ? help"

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		m.quitArmed = false
	}

	switch key {
	case "q":
		if m.session.HasChanges() && !m.quitArmed {
			m.quitArmed = true
			return m, m.setStatus("Unsaved changes, press q again to quit")
		}
		return m, tea.Quit

	// Navigation
	case "h", "left":
		return m.moveCursor(-1, 0)
	case "l", "right":
		return m.moveCursor(1, 0)
	case "k", "up":
		return m.moveCursor(0, -1)
	case "j", "down":
		return m.moveCursor(0, 1)
	case "pgup":
		return m.moveCursor(0, -max(1, m.layout.Rows))
	case "pgdown":
		return m.moveCursor(0, max(1, m.layout.Rows))

	// Gestures
	case " ":
		if m.keyRect {
			return m.commitKeyRect()
		}
		if m.controller.Active() {
			return m, nil
		}
		from := m.controller.State()
		m.controller.PressCell(m.cursor, false)
		LogGesture(from, m.controller.State(), m.cursor)
		m.controller.Release()
		return m, nil

	case "v":
		if m.keyRect {
			return m.commitKeyRect()
		}
		if m.controller.Active() {
			return m, nil
		}
		from := m.controller.State()
		if m.controller.PressCell(m.cursor, true) {
			m.keyRect = true
			LogGesture(from, m.controller.State(), m.cursor)
			return m, m.setStatus("Rectangle: move, then v or enter to apply, esc to cancel")
		}
		return m, nil

	case "esc":
		if m.controller.Active() {
			from := m.controller.State()
			m.controller.PointerCancel()
			m.keyRect = false
			LogGesture(from, m.controller.State(), m.cursor)
			return m, m.setStatus("Cancelled")
		}
		m.session.ClearActiveDay()
		return m, nil

	case "enter":
		if m.keyRect {
			return m.commitKeyRect()
		}
		if day, ok := m.session.ActiveDay(); ok && day == m.cursor.Day {
			m.session.ClearActiveDay()
			return m, nil
		}
		m.session.SelectDay(m.cursor.Day)
		return m, m.setStatus("Selected " + m.cursor.Day.String())

	// View presets
	case "1", "2", "3", "4":
		presets := availability.Presets()
		return m.changePreset(presets[int(key[0]-'1')])
	case "tab":
		return m.changePreset(m.session.Preset().Next())

	// Commands
	case "u", "ctrl+z":
		return m.runCommand("undo", m.dispatcher.Undo)
	case "f":
		return m.runCommand("fill", m.dispatcher.Fill)
	case "x":
		return m.runCommand("clear", m.dispatcher.Clear)
	case "c":
		return m.runCommand("copy", m.dispatcher.Copy)
	case "p":
		return m.runCommand("paste", m.dispatcher.Paste)

	case "ctrl+s", "w":
		return m.save()

	case "r":
		if m.session.HasChanges() {
			return m.openModal(ModalConfirmReload), nil
		}
		return m.reload()

	case "D":
		if !m.session.HasChanges() {
			return m, m.setStatus("No changes to discard")
		}
		return m.openModal(ModalConfirmDiscard), nil

	case "/":
		if m.describer == nil {
			return m, m.setStatus("No LLM provider configured")
		}
		if m.describing {
			return m, m.setStatus("Describe already in progress")
		}
		m.settleGesture()
		LogModeChange(m.mode, ModePrompt, "describe")
		m.mode = ModePrompt
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case "?":
		return m.openModal(ModalHelp), nil
	}

	return m, nil
}

// handlePromptKeys handles keys while the describe prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt("cancel")
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.prompt.Value())
		m.closePrompt("submit")
		if text == "" {
			return m, nil
		}
		m.describing = true
		return m, tea.Batch(
			m.setStatus("Describing…"),
			commands.Describe(m.describer, text, m.timeout),
		)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.modalType == ModalHelp {
		switch key {
		case "esc", "q", "?", "enter":
			m.closeModal("dismiss")
		}
		return m, nil
	}

	switch key {
	case "y", "Y", "enter":
		modal := m.modalType
		m.closeModal("confirm")
		switch modal {
		case ModalConfirmDiscard:
			m.session.Discard()
			return m, m.setStatus("Changes discarded")
		case ModalConfirmReload:
			return m.reload()
		}
	case "n", "N", "esc", "q":
		m.closeModal("cancel")
	}
	return m, nil
}

// moveCursor moves the cursor, extending a keyboard rectangle when one is open.
func (m Model) moveCursor(dDay, dSlot int) (tea.Model, tea.Cmd) {
	r := m.session.VisibleRange()
	day := max(0, min(int(m.cursor.Day)+dDay, availability.DaysPerWeek-1))
	m.cursor = availability.Cell{
		Day:  availability.Weekday(day),
		Slot: r.Clamp(m.cursor.Slot + dSlot),
	}
	m.ensureCursorVisible()
	if m.keyRect {
		m.controller.MoveCell(m.cursor)
	}
	return m, nil
}

func (m Model) commitKeyRect() (tea.Model, tea.Cmd) {
	from := m.controller.State()
	changed := m.controller.Release()
	m.keyRect = false
	LogGesture(from, m.controller.State(), m.cursor)
	if !changed {
		return m, m.setStatus("No change")
	}
	return m, nil
}

func (m Model) changePreset(p availability.Preset) (tea.Model, tea.Cmd) {
	result, err := m.dispatcher.ChangePreset(p)
	LogCommand("preset", result, err)
	m.keyRect = false
	if err != nil {
		return m, m.setError(err)
	}
	m.cursor.Slot = m.session.VisibleRange().Clamp(m.cursor.Slot)
	m.scroll = 0
	m.relayout()
	m.ensureCursorVisible()
	return m, m.commandStatus(result, nil)
}

func (m Model) runCommand(name string, run func() (editor.Result, error)) (tea.Model, tea.Cmd) {
	result, err := run()
	m.keyRect = false
	LogCommand(name, result, err)
	return m, m.commandStatus(result, err)
}

// save commits any gesture and sends the encoded matrix to the gateway.
func (m Model) save() (tea.Model, tea.Cmd) {
	m.settleGesture()
	intervals, sent, err := m.session.BeginSave()
	if errors.Is(err, editor.ErrSaveInProgress) {
		return m, m.setStatus("Save already in progress")
	}
	if err != nil {
		return m, m.setError(err)
	}
	return m, tea.Batch(
		m.setStatus("Saving…"),
		commands.Save(m.gateway, m.session.ProviderID(), intervals, sent, m.timeout),
	)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.session.Saving() {
		return m, m.setStatus("Save in progress, try again when it finishes")
	}
	m.settleGesture()
	m.loading = true
	return m, tea.Batch(
		m.setStatus(fmt.Sprintf("Reloading %s…", m.session.ProviderID())),
		commands.Load(m.gateway, m.session.ProviderID(), m.timeout),
	)
}

// settleGesture commits a gesture in progress.
func (m *Model) settleGesture() {
	if m.controller.Active() {
		from := m.controller.State()
		m.controller.Release()
		LogGesture(from, m.controller.State(), m.cursor)
	}
	m.keyRect = false
}

func (m Model) openModal(t ModalType) Model {
	m.settleGesture()
	LogModeChange(m.mode, ModeModal, "open modal")
	m.mode = ModeModal
	m.modalType = t
	if !m.overlay.Active() {
		m.overlay.Toggle()
	}
	return m
}

func (m *Model) closeModal(reason string) {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.modalType = ModalNone
	if m.overlay.Active() {
		m.overlay.Toggle()
	}
}

func (m *Model) closePrompt(reason string) {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.prompt.Blur()
}

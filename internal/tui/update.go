package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/editor"
	"github.com/javiermolinar/weekgrid/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.BlurMsg:
		// Releases outside the window never arrive.
		if m.controller.Active() {
			from := m.controller.State()
			m.controller.PointerCancel()
			m.keyRect = false
			LogGesture(from, m.controller.State(), m.cursor)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case commands.LoadedMsg:
		m.loading = false
		if msg.ProviderID != m.session.ProviderID() {
			return m, nil
		}
		// A drag in progress belongs to the matrix being replaced.
		m.settleGesture()
		m.session.Load(msg.Intervals)
		m.quitArmed = false
		return m, m.setStatus(fmt.Sprintf("Loaded %d interval(s) for %s", len(msg.Intervals), msg.ProviderID))

	case commands.SavedMsg:
		if err := m.session.CompleteSave(msg.Matrix); err != nil {
			LogError("complete save", err)
			return m, nil
		}
		m.quitArmed = false
		return m, m.setStatus(fmt.Sprintf("Saved %d interval(s)", msg.Intervals))

	case commands.SaveFailedMsg:
		if err := m.session.FailSave(msg.Err); err != nil {
			LogError("fail save", err)
			return m, nil
		}
		LogError("save", msg.Err)
		return m, m.setError(fmt.Errorf("save failed: %w", msg.Err))

	case commands.DescribedMsg:
		m.describing = false
		result, err := m.dispatcher.Replace("Describe: "+msg.Text, msg.Intervals)
		LogCommand("describe", result, err)
		return m, m.commandStatus(result, err)

	case commands.ErrMsg:
		m.loading = false
		m.describing = false
		LogError("command", msg.Err)
		return m, m.setError(msg.Err)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.statusTime.IsZero() && time.Since(m.statusTime) >= statusDuration {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// relayout rebuilds the grid layout after a resize, scroll or preset change
// and points the controller at it.
func (m *Model) relayout() {
	m.layout = NewGridLayout(m.width, m.height, m.session.VisibleRange(), m.scroll)
	m.scroll = m.layout.Scroll()
	m.controller.SetResolver(m.layout)
}

// ensureCursorVisible scrolls so the cursor row is on screen.
func (m *Model) ensureCursorVisible() {
	if m.layout.Rows == 0 || m.layout.Visible(m.cursor.Slot) {
		return
	}
	r := m.session.VisibleRange()
	if m.cursor.Slot < m.layout.First {
		m.scroll = m.cursor.Slot - r.Min
	} else {
		m.scroll = m.cursor.Slot - r.Min - m.layout.Rows + 1
	}
	m.relayout()
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMsg = text
	m.statusErr = false
	m.statusTime = time.Now()
	return commands.ClearStatusAfter(statusDuration)
}

func (m *Model) setError(err error) tea.Cmd {
	m.statusMsg = err.Error()
	m.statusErr = true
	m.statusTime = time.Now()
	return commands.ClearStatusAfter(errorDuration)
}

// commandStatus reports a dispatcher outcome in the status line.
func (m *Model) commandStatus(result editor.Result, err error) tea.Cmd {
	switch {
	case errors.Is(err, editor.ErrNoActiveDay), errors.Is(err, editor.ErrClipboardEmpty):
		return m.setStatus(err.Error())
	case err != nil:
		return m.setError(err)
	case result.Notice != "":
		return m.setStatus(result.Notice)
	}
	return nil
}

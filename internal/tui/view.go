package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/tui/view"
)

// View renders the TUI.
func (m Model) View() string {
	screen := view.Screen{
		Width:         m.width,
		Height:        m.height,
		Bg:            m.styles.colorBg,
		TooSmall:      m.layout.Rows == 0,
		TooSmallStyle: m.styles.ErrorStyle,
		Modal:         m.renderModal(),
		ShowModal:     m.mode == ModeModal,
		Overlay:       m.overlay,
	}
	if m.width > 0 && m.height > 0 && m.layout.Rows > 0 {
		screen.Sections = []string{
			m.renderTitle(),
			view.RenderHeader(m.cornerLabel(), m.layout.Left, m.layout.ColW, m.dayHeaders(), m.styles.Header),
			view.RenderGrid(view.GridViewState{
				TimeColW: m.layout.Left,
				ColW:     m.layout.ColW,
				Slots:    m.layout.Slots(),
				Cells:    m.gridCells(),
				Styles:   m.styles.Grid,
			}),
		}
		screen.Footer = view.FooterViewState{
			FooterH:     footerHeight,
			StatsText:   m.statsText(),
			StatusText:  m.statusText(),
			HelpText:    shortHelp,
			PromptText:  view.PromptText(m.prompt.Value(), "▏", m.prompt.Placeholder),
			ShowPrompt:  m.mode == ModePrompt,
			StatsStyle:  m.styles.StatsStyle,
			StatusStyle: m.statusStyle(),
			HelpStyle:   m.styles.HelpStyle,
			PromptStyle: m.styles.PromptStyle,
			Bg:          m.styles.colorBg,
		}
	}
	return view.Render(screen)
}

func (m Model) renderTitle() string {
	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Render(fmt.Sprintf(" weekgrid · %s · %s", m.session.ProviderID(), m.session.Preset().Label())))
	if m.session.HasChanges() {
		b.WriteString(m.styles.UnsavedTag.Render(" [unsaved]"))
	}
	if m.session.Saving() {
		b.WriteString(m.styles.SavingTag.Render(" Saving…"))
	}
	if m.loading {
		b.WriteString(m.styles.SavingTag.Render(" Loading…"))
	}
	return view.Line(m.width, m.styles.AppStyle, b.String())
}

// cornerLabel shows the scroll position when the range does not fit.
func (m Model) cornerLabel() string {
	if m.layout.MaxScroll() == 0 {
		return ""
	}
	switch {
	case m.layout.Scroll() == 0:
		return "↓"
	case m.layout.Scroll() == m.layout.MaxScroll():
		return "↑"
	default:
		return "↕"
	}
}

func (m Model) dayHeaders() []view.DayHeader {
	active, hasActive := m.session.ActiveDay()
	dirty := make(map[availability.Weekday]bool)
	for _, d := range m.session.DirtyDays() {
		dirty[d] = true
	}

	headers := make([]view.DayHeader, 0, availability.DaysPerWeek)
	for _, day := range availability.Weekdays() {
		headers = append(headers, view.DayHeader{
			Day:    day,
			Active: hasActive && day == active,
			Dirty:  dirty[day],
		})
	}
	return headers
}

// gridCells builds the visible cells from the working matrix and any pending
// rectangle.
func (m Model) gridCells() [][]view.GridCell {
	matrix := m.session.Matrix()
	preview, hasPreview := m.controller.Preview()

	slots := m.layout.Slots()
	cells := make([][]view.GridCell, len(slots))
	for row, slot := range slots {
		cells[row] = make([]view.GridCell, availability.DaysPerWeek)
		for d := range availability.DaysPerWeek {
			c := availability.Cell{Day: availability.Weekday(d), Slot: slot}
			kind := view.CellEmpty
			switch {
			case hasPreview && preview.Contains(c) && preview.Action:
				kind = view.CellFillPreview
			case hasPreview && preview.Contains(c):
				kind = view.CellErasePreview
			case matrix.Get(c):
				kind = view.CellAvailable
			}
			cells[row][d] = view.GridCell{Kind: kind, Cursor: c == m.cursor}
		}
	}
	return cells
}

func (m Model) statsText() string {
	stats := m.session.Matrix().Stats()
	text := fmt.Sprintf("%s available · %d interval(s) · %d/%d days",
		availability.FormatMinutes(stats.TotalMinutes()),
		stats.TotalIntervals(),
		stats.ActiveDays(),
		availability.DaysPerWeek,
	)
	if day, ok := m.session.ActiveDay(); ok {
		text += fmt.Sprintf(" · %s %s", day.ShortName(), availability.FormatMinutes(stats.Days[day].Minutes))
	}
	if n := m.session.HistoryLen(); n > 0 {
		text += fmt.Sprintf(" · %d undo", n)
	}
	return text
}

func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if err := m.session.SaveError(); err != nil {
		return "Last save failed: " + err.Error()
	}
	return ""
}

func (m Model) statusStyle() lipgloss.Style {
	if m.statusErr || (m.statusMsg == "" && m.session.SaveError() != nil) {
		return m.styles.ErrorStyle
	}
	return m.styles.StatusStyle
}

func (m Model) renderModal() string {
	if m.mode != ModeModal {
		return ""
	}
	s := m.styles.Modal
	switch m.modalType {
	case ModalHelp:
		return view.RenderModalFrame("Keys", view.HelpBody(helpBindings), "esc to close", s)
	case ModalConfirmDiscard:
		body := fmt.Sprintf("Discard unsaved changes on %d day(s)?", len(m.session.DirtyDays()))
		return view.RenderModalFrame("Discard changes", body, view.RenderModalButtons(s, "[y] Discard", "[n] Keep"), s)
	case ModalConfirmReload:
		body := "Reloading replaces your unsaved changes with the stored availability."
		return view.RenderModalFrame("Reload", body, view.RenderModalButtons(s, "[y] Reload", "[n] Cancel"), s)
	}
	return ""
}

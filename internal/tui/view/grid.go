package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// CellKind is what a grid cell shows.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellAvailable
	CellFillPreview  // inside a pending rectangle that will mark available
	CellErasePreview // inside a pending rectangle that will clear
)

// Cell glyphs. Colors carry most of the meaning; glyphs keep the grid
// readable without color.
const (
	glyphEmpty        = " "
	glyphAvailable    = "█"
	glyphFillPreview  = "▒"
	glyphErasePreview = "░"
)

// GridCell is one rendered cell.
type GridCell struct {
	Kind   CellKind
	Cursor bool
}

// GridStyles groups the styles used to draw the grid.
type GridStyles struct {
	Time         lipgloss.Style
	TimeHalf     lipgloss.Style
	Empty        lipgloss.Style
	EmptyAlt     lipgloss.Style
	Available    lipgloss.Style
	AvailableAlt lipgloss.Style
	FillPreview  lipgloss.Style
	ErasePreview lipgloss.Style
	Cursor       lipgloss.Style
	Gap          lipgloss.Style
}

// GridViewState holds what RenderGrid needs. Cells is indexed [row][day]
// and Slots gives the slot shown on each row.
type GridViewState struct {
	TimeColW int
	ColW     int
	Slots    []int
	Cells    [][]GridCell
	Styles   GridStyles
}

// RenderGrid draws one line per slot: a time label followed by seven day
// columns. Every column is ColW wide with a one-column gap on the right.
func RenderGrid(state GridViewState) string {
	if state.ColW < 2 || len(state.Slots) == 0 {
		return ""
	}

	lines := make([]string, len(state.Slots))
	for row, slot := range state.Slots {
		var b strings.Builder
		b.WriteString(timeLabel(state, slot))
		for _, cell := range state.Cells[row] {
			b.WriteString(renderCell(state, slot, cell))
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func timeLabel(state GridViewState, slot int) string {
	style := state.Styles.Time
	label := availability.SlotStart(slot)
	if slot%2 == 1 {
		style = state.Styles.TimeHalf
		label = "  :30"
	}
	label = ansi.Truncate(label, max(0, state.TimeColW-1), "")
	return style.Width(state.TimeColW).Render(label)
}

func renderCell(state GridViewState, slot int, cell GridCell) string {
	bodyW := state.ColW - 1
	alt := (slot/2)%2 == 1

	var style lipgloss.Style
	var glyph string
	switch cell.Kind {
	case CellAvailable:
		style, glyph = state.Styles.Available, glyphAvailable
		if alt {
			style = state.Styles.AvailableAlt
		}
	case CellFillPreview:
		style, glyph = state.Styles.FillPreview, glyphFillPreview
	case CellErasePreview:
		style, glyph = state.Styles.ErasePreview, glyphErasePreview
	default:
		style, glyph = state.Styles.Empty, glyphEmpty
		if alt {
			style = state.Styles.EmptyAlt
		}
	}

	body := strings.Repeat(glyph, bodyW)
	if cell.Cursor {
		body = cursorBody(glyph, bodyW)
		style = state.Styles.Cursor
	}
	return style.Render(body) + state.Styles.Gap.Render(" ")
}

func cursorBody(glyph string, width int) string {
	if width < 3 {
		return strings.Repeat("◆", width)
	}
	return "[" + strings.Repeat(glyph, width-2) + "]"
}

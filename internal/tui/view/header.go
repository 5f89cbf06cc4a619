package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// DayHeader describes one column heading.
type DayHeader struct {
	Day    availability.Weekday
	Active bool // selected for toolbar commands
	Dirty  bool // differs from the saved state
}

// HeaderStyles groups the styles used for column headings.
type HeaderStyles struct {
	Corner lipgloss.Style
	Day    lipgloss.Style
	Active lipgloss.Style
	Dirty  lipgloss.Style
	Gap    lipgloss.Style
}

// HeaderLabel returns the text shown above a day column.
func HeaderLabel(h DayHeader) string {
	label := h.Day.ShortName()
	if h.Active {
		label = "▸" + label
	}
	if h.Dirty {
		label += "*"
	}
	return label
}

// RenderHeader draws the corner label followed by one heading per day.
func RenderHeader(corner string, timeColW, colW int, headers []DayHeader, styles HeaderStyles) string {
	var b strings.Builder
	b.WriteString(styles.Corner.Width(timeColW).Render(ansi.Truncate(corner, max(0, timeColW-1), "")))
	bodyW := max(0, colW-1)
	for _, h := range headers {
		style := styles.Day
		switch {
		case h.Active:
			style = styles.Active
		case h.Dirty:
			style = styles.Dirty
		}
		label := ansi.Truncate(HeaderLabel(h), bodyW, "")
		b.WriteString(style.Width(bodyW).Align(lipgloss.Center).Render(label))
		b.WriteString(styles.Gap.Render(" "))
	}
	return b.String()
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the strings and styles for the footer section.
type FooterViewState struct {
	InnerW      int
	FooterH     int
	StatsText   string
	StatusText  string
	HelpText    string
	PromptText  string
	ShowPrompt  bool
	StatsStyle  lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style
	Bg          lipgloss.Color
}

// RenderFooter renders stats, status and help lines, with the prompt
// replacing the help line while it is open. Short terminals keep only
// the last FooterH lines.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}

	last := Line(state.InnerW, state.HelpStyle, state.HelpText)
	if state.ShowPrompt {
		last = Line(state.InnerW, state.PromptStyle, state.PromptText)
	}
	lines := []string{
		Line(state.InnerW, state.StatsStyle, state.StatsText),
		Line(state.InnerW, state.StatusStyle, state.StatusText),
		last,
	}
	if len(lines) > state.FooterH {
		lines = lines[len(lines)-state.FooterH:]
	}

	return PlaceBox(state.InnerW, state.FooterH, lipgloss.Bottom, strings.Join(lines, "\n"), state.Bg)
}

// PromptText renders the describe prompt input line.
func PromptText(value, cursor, placeholder string) string {
	if value == "" && placeholder != "" {
		return "> " + cursor + placeholder
	}
	return "> " + value + cursor
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	Frame        lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Footer       lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(title))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Body.Render(body))
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Footer.Render(footer))
	}

	return styles.Frame.Render(b.String())
}

// RenderModalButtons renders a row of modal buttons with the first one active.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := styles.Button
		if i == 0 {
			style = styles.ButtonActive
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, styles.Body.Render(" "))
}

// HelpBody lists key bindings as aligned "key  description" lines.
func HelpBody(bindings [][2]string) string {
	width := 0
	for _, kb := range bindings {
		width = max(width, lipgloss.Width(kb[0]))
	}
	lines := make([]string, len(bindings))
	for i, kb := range bindings {
		lines[i] = kb[0] + strings.Repeat(" ", width-lipgloss.Width(kb[0])+2) + kb[1]
	}
	return strings.Join(lines, "\n")
}

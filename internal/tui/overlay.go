package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel splices a centered box over the base view.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Toggle flips the overlay visibility.
func (o *OverlayModel) Toggle() {
	o.active = !o.active
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground sets the color used to pad content lines to the box width.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws content centered on top of base. Base lines outside the box
// are kept intact.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 || content == "" {
		return base
	}

	box := strings.Split(strings.TrimRight(content, "\n"), "\n")
	boxW := 0
	for _, line := range box {
		boxW = max(boxW, lipgloss.Width(line))
	}
	boxW = min(boxW, width)
	if len(box) > height {
		box = box[:height]
	}

	top := (height - len(box)) / 2
	left := (width - boxW) / 2
	pad := lipgloss.NewStyle().Background(o.bgColor)

	lines := o.normalizeBase(base, width, height)
	for i, line := range box {
		if w := lipgloss.Width(line); w > boxW {
			line = ansi.Truncate(line, boxW, "")
		} else if w < boxW {
			line += pad.Render(strings.Repeat(" ", boxW-w))
		}
		row := top + i
		lines[row] = ansi.Cut(lines[row], 0, left) + line + ansi.ResetStyle + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

func (o OverlayModel) normalizeBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}

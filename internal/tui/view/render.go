// Package view renders the weekgrid editor from plain view state.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OverlayRenderer draws a modal box over the editor screen.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// Screen is everything needed to draw one editor frame. Sections are
// rendered by the caller; Render stacks them above the footer.
type Screen struct {
	Width  int
	Height int

	// Sections are drawn top to bottom and padded down to the footer.
	Sections []string
	Footer   FooterViewState
	Bg       lipgloss.Color

	// TooSmall replaces the editor with a centered notice.
	TooSmall      bool
	TooSmallStyle lipgloss.Style

	Modal     string
	ShowModal bool
	Overlay   OverlayRenderer

	// Placeholder is shown before the first window size arrives.
	Placeholder string
}

// Render composes the editor frame.
func Render(s Screen) string {
	if s.Width <= 0 || s.Height <= 0 {
		if s.Placeholder != "" {
			return s.Placeholder
		}
		return "Loading availability..."
	}

	var base string
	if s.TooSmall {
		msg := s.TooSmallStyle.Render(fmt.Sprintf("Terminal too small (%dx%d)", s.Width, s.Height))
		base = PlaceBox(s.Width, s.Height, lipgloss.Center, msg, s.Bg)
	} else {
		footer := s.Footer
		footer.InnerW = s.Width
		footer.FooterH = min(footer.FooterH, s.Height)

		var parts []string
		if bodyH := s.Height - footer.FooterH; bodyH > 0 {
			parts = append(parts, PadLinesWithBackground(strings.Join(s.Sections, "\n"), s.Width, bodyH, s.Bg))
		}
		if f := RenderFooter(footer); f != "" {
			parts = append(parts, f)
		}
		base = strings.Join(parts, "\n")
	}

	if s.ShowModal && s.Overlay != nil {
		return s.Overlay.Render(base, s.Width, s.Height, s.Modal)
	}
	return base
}

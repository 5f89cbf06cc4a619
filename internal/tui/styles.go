// Package tui provides the terminal availability editor for weekgrid.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekgrid/internal/tui/theme"
	"github.com/javiermolinar/weekgrid/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg     lipgloss.Color
	colorAccent lipgloss.Color

	ModalBackdropColor lipgloss.Color

	AppStyle    lipgloss.Style
	TitleStyle  lipgloss.Style
	UnsavedTag  lipgloss.Style
	SavingTag   lipgloss.Style
	StatsStyle  lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	Grid   view.GridStyles
	Header view.HeaderStyles
	Modal  view.ModalStyles
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s := &Styles{
		colorBg:            p.Bg,
		colorAccent:        p.Accent,
		ModalBackdropColor: p.ModalBg,
	}

	s.AppStyle = base
	s.TitleStyle = base.Bold(true).Foreground(p.Accent)
	s.UnsavedTag = base.Bold(true).Foreground(p.Warning)
	s.SavingTag = base.Italic(true).Foreground(p.FgMuted)

	s.StatsStyle = base.Foreground(p.FgMuted).Padding(0, 1)
	s.StatusStyle = base.Padding(0, 1)
	s.ErrorStyle = s.StatusStyle.Foreground(p.Warning).Bold(true)
	s.HelpStyle = base.Foreground(p.FgMuted).Padding(0, 1)
	s.PromptStyle = base.Foreground(p.Accent).Padding(0, 1)

	cell := lipgloss.NewStyle().Foreground(p.FgMuted)
	s.Grid = view.GridStyles{
		Time:         base.Foreground(p.Accent),
		TimeHalf:     base.Foreground(p.FgMuted),
		Empty:        cell.Background(p.EmptyBg),
		EmptyAlt:     cell.Background(p.EmptyBgAlt),
		Available:    cell.Background(p.AvailableBg).Foreground(p.Available),
		AvailableAlt: cell.Background(p.AvailableBgAlt).Foreground(p.Available),
		FillPreview:  cell.Background(p.FillPreviewBg).Foreground(p.Available),
		ErasePreview: cell.Background(p.ErasePreviewBg).Foreground(p.Erase),
		Cursor:       cell.Background(p.BgSelection).Foreground(p.Fg).Bold(true),
		Gap:          base,
	}

	s.Header = view.HeaderStyles{
		Corner: base.Foreground(p.FgMuted),
		Day:    base.Bold(true),
		Active: base.Bold(true).Foreground(p.TextOnAccent).Background(p.Accent),
		Dirty:  base.Bold(true).Foreground(p.Warning),
		Gap:    base,
	}

	modalBase := lipgloss.NewStyle().Background(p.ModalBg).Foreground(p.Fg)
	s.Modal = view.ModalStyles{
		Frame: modalBase.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.ModalBorder).
			BorderBackground(p.ModalBg).
			Padding(1, 2),
		Title:        modalBase.Bold(true).Foreground(p.Accent),
		Body:         modalBase,
		Footer:       modalBase.Foreground(p.FgMuted),
		Button:       modalBase.Padding(0, 1),
		ButtonActive: modalBase.Padding(0, 1).Bold(true).Foreground(p.TextOnAccent).Background(p.Accent),
	}

	return s
}

package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// defaultWidth is used when output is not a terminal.
const defaultWidth = 80

// Week printing palette.
var (
	colorFull    = color.New(color.FgGreen, color.Bold)
	colorPartial = color.New(color.FgGreen)
	colorIdle    = color.New(color.FgWhite, color.Faint)
	colorLabel   = color.New(color.Bold)
	colorHours   = color.New(color.FgCyan)
	colorDim     = color.New(color.FgWhite, color.Faint)
	colorNotice  = color.New(color.FgYellow)
)

// fill is how much of a bar column is available.
type fill int

const (
	fillNone fill = iota
	fillPartial
	fillFull
)

// fillOf classifies a column covering total slots with set of them available.
func fillOf(set, total int) fill {
	switch {
	case total > 0 && set == total:
		return fillFull
	case set > 0:
		return fillPartial
	default:
		return fillNone
	}
}

// glyph returns the colored bar cell for f.
func (f fill) glyph() string {
	switch f {
	case fillFull:
		return colorFull.Sprint(barFull)
	case fillPartial:
		return colorPartial.Sprint(barPartial)
	default:
		return colorIdle.Sprint(barEmpty)
	}
}

// outputWidth returns the width of w when it is a terminal.
func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// configureColor turns color off when asked to or when w is not a terminal.
// NO_COLOR is already honored by fatih/color.
func configureColor(w io.Writer, disable bool) {
	if disable {
		color.NoColor = true
		return
	}
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		color.NoColor = true
	}
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatLabel(s string) string  { return colorLabel.Sprint(s) }
func formatHours(s string) string  { return colorHours.Sprint(s) }
func formatDim(s string) string    { return colorDim.Sprint(s) }
func formatNotice(s string) string { return colorNotice.Sprint(s) }

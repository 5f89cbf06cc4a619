package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

func plainGridStyles() GridStyles {
	s := lipgloss.NewStyle()
	return GridStyles{
		Time: s, TimeHalf: s, Empty: s, EmptyAlt: s, Available: s, AvailableAlt: s,
		FillPreview: s, ErasePreview: s, Cursor: s, Gap: s,
	}
}

func plainHeaderStyles() HeaderStyles {
	s := lipgloss.NewStyle()
	return HeaderStyles{Corner: s, Day: s, Active: s, Dirty: s, Gap: s}
}

func gridState(cells [][]GridCell, slots []int) GridViewState {
	return GridViewState{TimeColW: 6, ColW: 4, Slots: slots, Cells: cells, Styles: plainGridStyles()}
}

func row(kinds ...CellKind) []GridCell {
	out := make([]GridCell, len(kinds))
	for i, k := range kinds {
		out[i] = GridCell{Kind: k}
	}
	return out
}

func TestRenderGrid(t *testing.T) {
	cells := [][]GridCell{
		row(CellAvailable, CellEmpty, CellFillPreview, CellErasePreview, CellEmpty, CellEmpty, CellEmpty),
		row(CellEmpty, CellEmpty, CellEmpty, CellEmpty, CellEmpty, CellEmpty, CellAvailable),
	}
	cells[1][1].Cursor = true

	out := ansi.Strip(RenderGrid(gridState(cells, []int{18, 19})))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), out)
	}

	want0 := "09:00 ███     ▒▒▒ ░░░             "
	if lines[0] != want0 {
		t.Errorf("row 0 = %q, want %q", lines[0], want0)
	}
	want1 := "  :30     [ ]                 ███ "
	if lines[1] != want1 {
		t.Errorf("row 1 = %q, want %q", lines[1], want1)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6+7*4 {
			t.Errorf("row %d width = %d, want %d", i, w, 6+7*4)
		}
	}
}

func TestRenderGridEmpty(t *testing.T) {
	if got := RenderGrid(GridViewState{ColW: 4}); got != "" {
		t.Errorf("RenderGrid() with no rows = %q, want empty", got)
	}
	if got := RenderGrid(GridViewState{ColW: 1, Slots: []int{0}, Cells: [][]GridCell{row(CellEmpty)}}); got != "" {
		t.Errorf("RenderGrid() with narrow columns = %q, want empty", got)
	}
}

func TestHeaderLabel(t *testing.T) {
	tests := []struct {
		h    DayHeader
		want string
	}{
		{DayHeader{Day: availability.Saturday}, "Sat"},
		{DayHeader{Day: availability.Monday, Active: true}, "▸Mon"},
		{DayHeader{Day: availability.Friday, Dirty: true}, "Fri*"},
		{DayHeader{Day: availability.Sunday, Active: true, Dirty: true}, "▸Sun*"},
	}
	for _, tt := range tests {
		if got := HeaderLabel(tt.h); got != tt.want {
			t.Errorf("HeaderLabel(%+v) = %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestRenderHeaderWidth(t *testing.T) {
	headers := make([]DayHeader, 0, 7)
	for _, d := range availability.Weekdays() {
		headers = append(headers, DayHeader{Day: d, Active: d == availability.Monday})
	}
	out := RenderHeader("Full", 6, 8, headers, plainHeaderStyles())
	if w := lipgloss.Width(out); w != 6+7*8 {
		t.Errorf("header width = %d, want %d", w, 6+7*8)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{"Sat", "▸Mon", "Fri"} {
		if !strings.Contains(plain, want) {
			t.Errorf("header missing %q: %q", want, plain)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	s := lipgloss.NewStyle()
	state := FooterViewState{
		InnerW:      40,
		FooterH:     3,
		StatsText:   "Total 3h",
		StatusText:  "Saved",
		HelpText:    "q quit",
		PromptText:  PromptText("weekends", "_", ""),
		StatsStyle:  s,
		StatusStyle: s,
		HelpStyle:   s,
		PromptStyle: s,
	}

	out := ansi.Strip(RenderFooter(state))
	if !strings.Contains(out, "q quit") || strings.Contains(out, "weekends") {
		t.Errorf("footer without prompt:\n%s", out)
	}

	state.ShowPrompt = true
	out = ansi.Strip(RenderFooter(state))
	if !strings.Contains(out, "> weekends_") || strings.Contains(out, "q quit") {
		t.Errorf("footer with prompt:\n%s", out)
	}

	state.FooterH = 1
	out = ansi.Strip(RenderFooter(state))
	if strings.Contains(out, "Total 3h") || strings.Count(out, "\n") != 0 {
		t.Errorf("compact footer should keep only the last line:\n%s", out)
	}
}

func TestRenderShowsPlaceholderWithoutSize(t *testing.T) {
	if got := Render(Screen{}); got != "Loading availability..." {
		t.Errorf("Render() = %q, want the default placeholder", got)
	}
	if got := Render(Screen{Height: 10, Placeholder: "Connecting..."}); got != "Connecting..." {
		t.Errorf("Render() = %q, want the custom placeholder", got)
	}
}

func TestRenderStacksSectionsAboveFooter(t *testing.T) {
	s := lipgloss.NewStyle()
	out := ansi.Strip(Render(Screen{
		Width:    20,
		Height:   6,
		Sections: []string{"title", "grid"},
		Footer: FooterViewState{
			FooterH:     2,
			StatusText:  "Saved",
			HelpText:    "q quit",
			StatsStyle:  s,
			StatusStyle: s,
			HelpStyle:   s,
		},
	}))

	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "title") || !strings.HasPrefix(lines[1], "grid") {
		t.Errorf("sections not at the top:\n%s", out)
	}
	if strings.TrimSpace(lines[2]) != "" || strings.TrimSpace(lines[3]) != "" {
		t.Errorf("expected blank padding between grid and footer:\n%s", out)
	}
	if !strings.HasPrefix(lines[4], "Saved") || !strings.HasPrefix(lines[5], "q quit") {
		t.Errorf("footer not at the bottom:\n%s", out)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d width = %d, want 20", i, w)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	out := ansi.Strip(Render(Screen{
		Width:    30,
		Height:   3,
		TooSmall: true,
		Sections: []string{"grid"},
	}))
	if !strings.Contains(out, "Terminal too small (30x3)") {
		t.Errorf("expected the size notice:\n%s", out)
	}
	if strings.Contains(out, "grid") {
		t.Errorf("sections should be hidden when too small:\n%s", out)
	}
}

type boxOverlay struct{}

func (boxOverlay) Render(_ string, _, _ int, content string) string {
	return "[" + content + "]"
}

func TestRenderModalUsesOverlay(t *testing.T) {
	screen := Screen{Width: 10, Height: 4, Modal: "keys", Overlay: boxOverlay{}}
	if got := Render(screen); got == "[keys]" {
		t.Error("overlay drawn while the modal is hidden")
	}
	screen.ShowModal = true
	if got := Render(screen); got != "[keys]" {
		t.Errorf("Render() = %q, want the overlay output", got)
	}
}

func TestLineTruncates(t *testing.T) {
	got := ansi.Strip(Line(8, lipgloss.NewStyle(), "0123456789"))
	if lipgloss.Width(got) != 8 || !strings.HasSuffix(got, "…") {
		t.Errorf("Line() = %q, want 8 cells ending in ellipsis", got)
	}
}

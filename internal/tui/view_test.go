package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

func TestView_BeforeFirstResize(t *testing.T) {
	cfg := testConfig()
	m := New(cfg, newFakeGateway())
	if got := m.View(); got != "Loading availability..." {
		t.Errorf("View() = %q, want Loading availability...", got)
	}
}

func TestView_FillsTerminal(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), []availability.Interval{
		{Day: availability.Monday, StartTime: "01:00", EndTime: "02:00", IsRecurring: true},
	})

	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 40 {
		t.Fatalf("expected 40 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 100 {
			t.Errorf("line %d width = %d, want 100", i, w)
		}
	}

	plain := ansi.Strip(out)
	for _, want := range []string{"weekgrid · p1", "Sat", "Fri", "00:00", "  :30", "1h available", "1 interval(s)"} {
		if !strings.Contains(plain, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestView_GridRowsMatchLayout(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), []availability.Interval{
		{Day: availability.Sunday, StartTime: "00:30", EndTime: "01:00", IsRecurring: true},
	})
	lines := strings.Split(ansi.Strip(m.View()), "\n")

	// Header sits on the layout's header row, Sunday's heading over its column.
	header := []rune(lines[m.layout.HeaderY])
	sunX := m.layout.Left + m.layout.ColW
	if got := string(header[sunX : sunX+m.layout.ColW]); !strings.Contains(got, "Sun") {
		t.Errorf("Sunday heading column = %q", got)
	}

	// Slot 1 is on the second grid row, filled for Sunday.
	row := []rune(lines[m.layout.Top+1])
	if got := string(row[sunX]); got != "█" {
		t.Errorf("Sunday slot 1 = %q, want filled", got)
	}
	if got := string(row[m.layout.Left]); got != " " {
		t.Errorf("Saturday slot 1 = %q, want empty", got)
	}
}

func TestView_DirtyAndActiveHeaders(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), nil)
	m = keys(t, m, " ", "enter")

	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "▸Sat*") {
		t.Error("expected Saturday marked active and dirty")
	}
	if !strings.Contains(plain, "[unsaved]") {
		t.Error("expected the unsaved tag")
	}
}

func TestView_TerminalTooSmall(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	if !strings.Contains(ansi.Strip(m.View()), "Terminal too small") {
		t.Error("expected the too small notice")
	}
	if _, ok := m.layout.CellAt(8, 3); ok {
		t.Error("expected no cells to resolve")
	}
}

func TestView_PromptReplacesHelp(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), nil, WithDescriber(&fakeDescriber{}))
	if !strings.Contains(ansi.Strip(m.View()), "? help") {
		t.Fatal("expected the help line")
	}
	m = keys(t, m, "/", "sundays")
	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "> sundays") {
		t.Error("expected the prompt line")
	}
	if strings.Contains(plain, "? help") {
		t.Error("expected the help line hidden while prompting")
	}
}

func TestView_AvailableCellsUseThemeBackground(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})

	m := newTestModel(t, newFakeGateway(), []availability.Interval{
		{Day: availability.Monday, StartTime: "00:00", EndTime: "01:00", IsRecurring: true},
	})
	out := m.View()

	prefix := func(style lipgloss.Style) string {
		rendered := style.Render("x")
		return rendered[:strings.Index(rendered, "x")]
	}
	available := prefix(m.styles.Grid.Available)
	alt := prefix(m.styles.Grid.AvailableAlt)
	if available == "" {
		t.Fatal("expected true color escape sequence for available cells")
	}
	if !strings.Contains(out, available) && !strings.Contains(out, alt) {
		t.Errorf("view does not use the available cell style %q", available)
	}
}

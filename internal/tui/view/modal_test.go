package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderModalButtons_UsesBodySeparator(t *testing.T) {
	styles := ModalStyles{
		Body:         lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Button:       lipgloss.NewStyle(),
		ButtonActive: lipgloss.NewStyle(),
	}

	view := RenderModalButtons(styles, "[y] Discard", "[n] Keep")
	sep := styles.Body.Render(" ")
	if !strings.Contains(view, sep) {
		t.Fatalf("expected modal button separator to use modal body style")
	}
}

func TestRenderModalFrame(t *testing.T) {
	out := ansi.Strip(RenderModalFrame("Discard changes?", "Mon, Tue edited", "[y] yes", plainModalStyles()))
	for _, want := range []string{"Discard changes?", "Mon, Tue edited", "[y] yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("modal missing %q:\n%s", want, out)
		}
	}
}

func TestHelpBodyAligns(t *testing.T) {
	got := HelpBody([][2]string{{"u", "undo"}, {"ctrl+s", "save"}})
	want := "u       undo\nctrl+s  save"
	if got != want {
		t.Errorf("HelpBody() = %q, want %q", got, want)
	}
}

func plainModalStyles() ModalStyles {
	s := lipgloss.NewStyle()
	return ModalStyles{Frame: s, Title: s, Body: s, Footer: s, Button: s, ButtonActive: s}
}

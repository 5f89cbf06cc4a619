package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

func TestMain(m *testing.M) {
	DisableColor()
	m.Run()
}

func rowWith(slots ...int) availability.Row {
	var row availability.Row
	for _, s := range slots {
		row[s] = true
	}
	return row
}

func TestDayBar(t *testing.T) {
	tests := []struct {
		name  string
		row   availability.Row
		r     availability.SlotRange
		width int
		want  string
	}{
		{
			name:  "one column per slot",
			row:   rowWith(2, 3),
			r:     availability.SlotRange{Min: 0, Max: 5},
			width: 10,
			want:  "··██··",
		},
		{
			name:  "compressed columns show partial",
			row:   rowWith(0, 1, 2),
			r:     availability.SlotRange{Min: 0, Max: 5},
			width: 3,
			want:  "█▌·",
		},
		{
			name:  "range offset",
			row:   rowWith(12),
			r:     availability.PresetMorning.Range(),
			width: 48,
			want:  "█" + strings.Repeat("·", 11),
		},
		{
			name:  "zero width",
			row:   rowWith(1),
			r:     availability.FullDay,
			width: 0,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayBar(tt.row, tt.r, tt.width); got != tt.want {
				t.Errorf("DayBar() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHourRuler(t *testing.T) {
	got := HourRuler(availability.FullDay, 48)

	if !strings.HasPrefix(got, "00:00") {
		t.Errorf("ruler should start at 00:00, got %q", got)
	}
	if !strings.Contains(got, "21:00") {
		t.Errorf("ruler missing 21:00: %q", got)
	}
	if len([]rune(got)) > 48 {
		t.Errorf("ruler wider than bar: %d", len([]rune(got)))
	}
	if HourRuler(availability.FullDay, 0) != "" {
		t.Error("zero width ruler should be empty")
	}
}

func TestFormatSpans(t *testing.T) {
	intervals := []availability.Interval{
		availability.NewInterval(availability.Monday, 18, 24),
		availability.NewInterval(availability.Monday, 28, 34),
	}
	if got, want := FormatSpans(intervals), "09:00-12:00, 14:00-17:00"; got != want {
		t.Errorf("FormatSpans() = %q, want %q", got, want)
	}
}

func TestPrintWeek(t *testing.T) {
	var m availability.Matrix
	for s := 18; s < 24; s++ {
		m[availability.Monday][s] = true
	}

	t.Run("all days", func(t *testing.T) {
		var buf bytes.Buffer
		PrintWeek(&buf, m, PrintOpts{Width: 80})
		out := buf.String()

		for _, day := range availability.Weekdays() {
			if !strings.Contains(out, day.ShortName()) {
				t.Errorf("missing %s in output:\n%s", day.ShortName(), out)
			}
		}
		for _, want := range []string{"Total:     3h", "Intervals: 1", "Days:      1/7"} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("hide idle and verbose", func(t *testing.T) {
		var buf bytes.Buffer
		PrintWeek(&buf, m, PrintOpts{Width: 80, HideIdle: true, Verbose: true})
		out := buf.String()

		if strings.Contains(out, "Sun") {
			t.Errorf("idle day should be hidden:\n%s", out)
		}
		if !strings.Contains(out, "09:00-12:00") {
			t.Errorf("verbose output should list spans:\n%s", out)
		}
	})
}

func TestPrintIntervals(t *testing.T) {
	var buf bytes.Buffer
	PrintIntervals(&buf, nil)
	if !strings.Contains(buf.String(), "No availability.") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	PrintIntervals(&buf, []availability.Interval{
		availability.NewInterval(availability.Friday, 0, 2),
		availability.NewInterval(availability.Saturday, 46, 48),
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "SATURDAY") || !strings.Contains(lines[0], "23:00-23:59") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "FRIDAY") {
		t.Errorf("second line = %q", lines[1])
	}
}

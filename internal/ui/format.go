package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// Bar glyphs.
const (
	barFull    = "█"
	barPartial = "▌"
	barEmpty   = "·"
)

// dayLabelWidth is the width of the day column, e.g. "Sat  ".
const dayLabelWidth = 5

// PrintOpts configures week printing behavior.
type PrintOpts struct {
	Range    availability.SlotRange // slots to draw
	Width    int                    // total line width, 0 = terminal width
	Verbose  bool                   // list intervals under each bar
	HideIdle bool                   // skip days with nothing available
}

// barWidth returns how many columns the bar may use when printing to out.
func (o PrintOpts) barWidth(out io.Writer) int {
	w := o.Width
	if w <= 0 {
		w = outputWidth(out)
	}
	// label + bar + "  12h30m"
	return max(8, w-dayLabelWidth-9)
}

// DayBar draws the slots of r in row as a bar at most width columns wide.
// When the range is wider than the bar each column covers several slots and
// shows full, partial or empty.
func DayBar(row availability.Row, r availability.SlotRange, width int) string {
	n := r.Len()
	if n == 0 || width <= 0 {
		return ""
	}
	cols := min(width, n)

	var b strings.Builder
	for c := range cols {
		from := r.Min + c*n/cols
		to := r.Min + (c+1)*n/cols
		set := 0
		for s := from; s < to; s++ {
			if row[s] {
				set++
			}
		}
		b.WriteString(fillOf(set, to-from).glyph())
	}
	return b.String()
}

// HourRuler labels every few hours above a bar drawn by DayBar.
func HourRuler(r availability.SlotRange, width int) string {
	n := r.Len()
	if n == 0 || width <= 0 {
		return ""
	}
	cols := min(width, n)
	line := []rune(strings.Repeat(" ", cols))

	// Labels fall on whole hours, or every four hours on narrow bars.
	step := 2
	if cols < n || cols < 24 {
		step = 8
	}
	for c := 0; c < cols; c++ {
		slot := r.Min + c*n/cols
		if slot%step != 0 || c+5 > cols {
			continue
		}
		// Avoid overwriting the previous label.
		if c > 0 && line[c-1] != ' ' {
			continue
		}
		label := []rune(availability.SlotStart(slot))
		copy(line[c:], label)
		c += len(label)
	}
	return strings.TrimRight(string(line), " ")
}

// FormatSpans renders intervals of one day as "09:00-12:00, 14:00-17:00".
func FormatSpans(intervals []availability.Interval) string {
	spans := make([]string, len(intervals))
	for i, iv := range intervals {
		spans[i] = iv.StartTime + "-" + iv.EndTime
	}
	return strings.Join(spans, ", ")
}

// intervalsByDay groups encoded intervals by weekday.
func intervalsByDay(intervals []availability.Interval) map[availability.Weekday][]availability.Interval {
	out := make(map[availability.Weekday][]availability.Interval)
	for _, iv := range intervals {
		out[iv.Day] = append(out[iv.Day], iv)
	}
	return out
}

// PrintWeek prints one bar per day followed by weekly totals.
func PrintWeek(w io.Writer, m availability.Matrix, opts PrintOpts) {
	r := opts.Range
	if r.Len() == 0 {
		r = availability.FullDay
	}
	width := opts.barWidth(w)
	stats := m.Stats()
	byDay := intervalsByDay(availability.Encode(m))

	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", dayLabelWidth), formatDim(HourRuler(r, width)))
	for _, day := range availability.Weekdays() {
		ds := stats.Days[day]
		if opts.HideIdle && ds.Minutes == 0 {
			continue
		}
		fmt.Fprintf(w, "%s%s  %s\n",
			formatLabel(fmt.Sprintf("%-*s", dayLabelWidth, day.ShortName())),
			DayBar(m.Row(day), r, width),
			formatHours(availability.FormatMinutes(ds.Minutes)),
		)
		if opts.Verbose && len(byDay[day]) > 0 {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", dayLabelWidth), formatDim(FormatSpans(byDay[day])))
		}
	}

	fmt.Fprintln(w)
	PrintStats(w, stats)
}

// PrintStats prints weekly totals.
func PrintStats(w io.Writer, stats availability.WeekStats) {
	fmt.Fprintf(w, "Total:     %s\n", formatHours(availability.FormatMinutes(stats.TotalMinutes())))
	fmt.Fprintf(w, "Intervals: %d\n", stats.TotalIntervals())
	fmt.Fprintf(w, "Days:      %d/%d\n", stats.ActiveDays(), availability.DaysPerWeek)
}

// PrintIntervals lists intervals one per line, grouped by day.
func PrintIntervals(w io.Writer, intervals []availability.Interval) {
	if len(intervals) == 0 {
		fmt.Fprintln(w, formatNotice("No availability."))
		return
	}
	byDay := intervalsByDay(intervals)
	for _, day := range availability.Weekdays() {
		if len(byDay[day]) == 0 {
			continue
		}
		fmt.Fprintf(w, "%-10s %s\n", day.String(), FormatSpans(byDay[day]))
	}
}

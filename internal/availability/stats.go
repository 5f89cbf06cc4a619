package availability

import "fmt"

// DayStats holds statistics for a single day.
type DayStats struct {
	Day       Weekday
	Minutes   int
	Intervals int
}

// WeekStats holds statistics for the whole week.
type WeekStats struct {
	Days [DaysPerWeek]DayStats
}

// TotalMinutes returns the available minutes across the week.
func (s WeekStats) TotalMinutes() int {
	total := 0
	for _, d := range s.Days {
		total += d.Minutes
	}
	return total
}

// TotalIntervals returns the number of intervals across the week.
func (s WeekStats) TotalIntervals() int {
	total := 0
	for _, d := range s.Days {
		total += d.Intervals
	}
	return total
}

// ActiveDays returns how many days have any availability.
func (s WeekStats) ActiveDays() int {
	n := 0
	for _, d := range s.Days {
		if d.Minutes > 0 {
			n++
		}
	}
	return n
}

// Stats calculates statistics for the matrix.
func (m Matrix) Stats() WeekStats {
	var stats WeekStats
	for d := range m {
		day := Weekday(d)
		stats.Days[d] = DayStats{
			Day:       day,
			Minutes:   m[d].Count() * SlotMinutes,
			Intervals: len(encodeRow(day, m[d])),
		}
	}
	return stats
}

// FormatMinutes renders a duration such as "7h30m", "45m" or "2h".
func FormatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}

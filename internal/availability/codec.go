package availability

// Decode builds a matrix from interval records.
// Records that are not recurring, name an unknown day, sit off the 30-minute
// lattice or have end <= start are skipped. Overlapping records merge.
func Decode(intervals []Interval) Matrix {
	var m Matrix
	for _, iv := range intervals {
		if !iv.IsRecurring {
			continue
		}
		start, end, ok := iv.Slots()
		if !ok {
			continue
		}
		for s := start; s < end; s++ {
			m[iv.Day][s] = true
		}
	}
	return m
}

// Encode turns the matrix into the minimal list of intervals: one per maximal
// run of available slots, ordered by day then start. A run that reaches the
// last slot ends at EndOfDay.
func Encode(m Matrix) []Interval {
	intervals := make([]Interval, 0)
	for d := range m {
		intervals = append(intervals, encodeRow(Weekday(d), m[d])...)
	}
	return intervals
}

// Normalize decodes and re-encodes intervals, merging overlaps and dropping invalid records.
func Normalize(intervals []Interval) []Interval {
	return Encode(Decode(intervals))
}

func encodeRow(day Weekday, row Row) []Interval {
	var out []Interval
	start := -1
	for s := 0; s < SlotsPerDay; s++ {
		switch {
		case row[s] && start < 0:
			start = s
		case !row[s] && start >= 0:
			out = append(out, NewInterval(day, start, s))
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, NewInterval(day, start, SlotsPerDay))
	}
	return out
}

package availability

import (
	"fmt"
	"strings"
)

// Preset names a visible window of the day. It never affects stored data.
type Preset string

const (
	PresetMorning   Preset = "MORNING"
	PresetAfternoon Preset = "AFTERNOON"
	PresetEvening   Preset = "EVENING"
	PresetFull      Preset = "FULL"
)

var presetOrder = []Preset{PresetMorning, PresetAfternoon, PresetEvening, PresetFull}

var presetRanges = map[Preset]SlotRange{
	PresetMorning:   {Min: 12, Max: 23}, // 06:00 - 12:00
	PresetAfternoon: {Min: 24, Max: 33}, // 12:00 - 17:00
	PresetEvening:   {Min: 34, Max: 47}, // 17:00 - 24:00
	PresetFull:      FullDay,
}

// Presets returns the presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presetOrder))
	copy(out, presetOrder)
	return out
}

// ParsePreset parses a preset name, case-insensitively.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := presetRanges[p]; !ok {
		return "", fmt.Errorf("%w, got %q", ErrInvalidPreset, s)
	}
	return p, nil
}

// Range returns the slot span of the preset. Unknown presets show the full day.
func (p Preset) Range() SlotRange {
	if r, ok := presetRanges[p]; ok {
		return r
	}
	return FullDay
}

// Next returns the preset that follows p, wrapping around.
func (p Preset) Next() Preset {
	for i, q := range presetOrder {
		if q == p {
			return presetOrder[(i+1)%len(presetOrder)]
		}
	}
	return PresetFull
}

// Label returns the preset with its time span, e.g. "Morning 06:00-12:00".
func (p Preset) Label() string {
	r := p.Range()
	name := "Full"
	if p != "" {
		name = string(p[:1]) + strings.ToLower(string(p[1:]))
	}
	return fmt.Sprintf("%s %s-%s", name, SlotStart(r.Min), BoundaryTime(r.Max+1))
}

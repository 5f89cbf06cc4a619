package availability

import (
	"errors"
	"testing"
)

func TestPresetRanges(t *testing.T) {
	tests := []struct {
		preset Preset
		want   SlotRange
		label  string
	}{
		{preset: PresetMorning, want: SlotRange{12, 23}, label: "Morning 06:00-12:00"},
		{preset: PresetAfternoon, want: SlotRange{24, 33}, label: "Afternoon 12:00-17:00"},
		{preset: PresetEvening, want: SlotRange{34, 47}, label: "Evening 17:00-23:59"},
		{preset: PresetFull, want: SlotRange{0, 47}, label: "Full 00:00-23:59"},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			if got := tt.preset.Range(); got != tt.want {
				t.Errorf("Range() = %v, want %v", got, tt.want)
			}
			if got := tt.preset.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestPresetNext(t *testing.T) {
	p := PresetMorning
	seen := []Preset{p}
	for i := 0; i < 4; i++ {
		p = p.Next()
		seen = append(seen, p)
	}
	want := []Preset{PresetMorning, PresetAfternoon, PresetEvening, PresetFull, PresetMorning}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("Next cycle = %v, want %v", seen, want)
		}
	}
}

func TestParsePreset(t *testing.T) {
	got, err := ParsePreset("evening")
	if err != nil || got != PresetEvening {
		t.Errorf("ParsePreset(evening) = %v, %v", got, err)
	}
	if _, err := ParsePreset("night"); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("ParsePreset(night) error = %v, want ErrInvalidPreset", err)
	}
}

func TestSlotRangeClamp(t *testing.T) {
	r := PresetAfternoon.Range()
	if got := r.Clamp(3); got != 24 {
		t.Errorf("Clamp(3) = %d, want 24", got)
	}
	if got := r.Clamp(40); got != 33 {
		t.Errorf("Clamp(40) = %d, want 33", got)
	}
	if got := NewSlotRange(50, -3); got != FullDay {
		t.Errorf("NewSlotRange(50, -3) = %v, want %v", got, FullDay)
	}
	if r.Len() != 10 {
		t.Errorf("Len() = %d, want 10", r.Len())
	}
}

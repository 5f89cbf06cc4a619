package availability

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Weekday
		wantErr bool
	}{
		{name: "full upper", input: "SATURDAY", want: Saturday},
		{name: "full lower", input: "friday", want: Friday},
		{name: "short", input: "Mon", want: Monday},
		{name: "padded", input: "  tuesday ", want: Tuesday},
		{name: "unknown", input: "FUNDAY", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWeekday) {
					t.Fatalf("ParseWeekday(%q) error = %v, want ErrInvalidWeekday", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeekday(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWeekdayOrder(t *testing.T) {
	days := Weekdays()
	if len(days) != DaysPerWeek {
		t.Fatalf("Weekdays() len = %d, want %d", len(days), DaysPerWeek)
	}
	if days[0] != Saturday || days[6] != Friday {
		t.Errorf("week order = %v..%v, want SATURDAY..FRIDAY", days[0], days[6])
	}
	if Weekday(7).Valid() || Weekday(-1).Valid() {
		t.Error("out of range weekdays should be invalid")
	}
}

func TestIntervalJSON(t *testing.T) {
	iv := Interval{Day: Sunday, StartTime: "05:00", EndTime: "07:30", IsRecurring: true}

	data, err := json.Marshal(iv)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"day":"SUNDAY","startTime":"05:00","endTime":"07:30","isRecurring":true}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var got Interval
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != iv {
		t.Errorf("Unmarshal = %+v, want %+v", got, iv)
	}

	if err := json.Unmarshal([]byte(`{"day":"NOPE"}`), &got); err == nil {
		t.Error("expected error for unknown day name")
	}
}

func TestSlotTimes(t *testing.T) {
	tests := []struct {
		slot      int
		wantStart string
		wantEnd   string
	}{
		{slot: 0, wantStart: "00:00", wantEnd: "00:30"},
		{slot: 18, wantStart: "09:00", wantEnd: "09:30"},
		{slot: 19, wantStart: "09:30", wantEnd: "10:00"},
		{slot: 46, wantStart: "23:00", wantEnd: "23:30"},
		{slot: 47, wantStart: "23:30", wantEnd: EndOfDay},
	}

	for _, tt := range tests {
		if got := SlotStart(tt.slot); got != tt.wantStart {
			t.Errorf("SlotStart(%d) = %q, want %q", tt.slot, got, tt.wantStart)
		}
		if got := SlotEnd(tt.slot); got != tt.wantEnd {
			t.Errorf("SlotEnd(%d) = %q, want %q", tt.slot, got, tt.wantEnd)
		}
	}
}

func TestStartAndEndSlot(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart int
		startOK   bool
		wantEnd   int
		endOK     bool
	}{
		{name: "midnight", input: "00:00", wantStart: 0, startOK: true, wantEnd: 0, endOK: true},
		{name: "half hour", input: "09:30", wantStart: 19, startOK: true, wantEnd: 19, endOK: true},
		{name: "end of day", input: "23:59", endOK: true, wantEnd: SlotsPerDay},
		{name: "24:00", input: "24:00", endOK: true, wantEnd: SlotsPerDay},
		{name: "off lattice", input: "09:15"},
		{name: "bad hour", input: "25:00"},
		{name: "short form", input: "9:00"},
		{name: "garbage", input: "ab:cd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, ok := StartSlot(tt.input)
			if ok != tt.startOK || (ok && start != tt.wantStart) {
				t.Errorf("StartSlot(%q) = %d, %v, want %d, %v", tt.input, start, ok, tt.wantStart, tt.startOK)
			}
			end, ok := EndSlot(tt.input)
			if ok != tt.endOK || (ok && end != tt.wantEnd) {
				t.Errorf("EndSlot(%q) = %d, %v, want %d, %v", tt.input, end, ok, tt.wantEnd, tt.endOK)
			}
		})
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
		{input: "9:00", want: 0},
		{input: "", want: 0},
	}

	for _, tt := range tests {
		if got := TimeToMinutes(tt.input); got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestValidateTime(t *testing.T) {
	if err := ValidateTime("17:45"); err != nil {
		t.Errorf("ValidateTime(17:45) unexpected error: %v", err)
	}
	for _, bad := range []string{"24:00", "7:00", "12:60", ""} {
		if err := ValidateTime(bad); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ValidateTime(%q) = %v, want ErrInvalidTimeFormat", bad, err)
		}
	}
}

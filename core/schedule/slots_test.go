package schedule

import (
	"testing"
)

func TestClockHour(t *testing.T) {
	tests := []struct {
		name    string
		clock   string
		want    float64
		wantErr bool
	}{
		{name: "24h with seconds", clock: "09:30:00", want: 9.5},
		{name: "24h", clock: "14:15", want: 14.25},
		{name: "midnight", clock: "00:00", want: 0},
		{name: "am/pm with seconds", clock: "2:30:00 PM", want: 14.5},
		{name: "am/pm", clock: "2:30 PM", want: 14.5},
		{name: "am/pm no space", clock: "2:30PM", want: 14.5},
		{name: "bare hour", clock: "2 PM", want: 14},
		{name: "bare hour no space", clock: "2PM", want: 14},
		{name: "lowercase meridiem", clock: "2:30 pm", want: 14.5},
		{name: "padded input", clock: "  09:30  ", want: 9.5},
		{name: "empty", clock: "", wantErr: true},
		{name: "garbage", clock: "noonish", wantErr: true},
		{name: "out of range", clock: "25:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClockHour(tt.clock)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ClockHour() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ClockHour() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTimeSlot(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		start     string
		end       string
		wantLabel string
		wantErr   bool
	}{
		{name: "labelled", label: "Morning", start: "08:00", end: "12:00", wantLabel: "Morning"},
		{name: "label defaults to range", start: "13:00", end: "17:30", wantLabel: "13:00 - 17:30"},
		{name: "start equals end", start: "08:00", end: "08:00", wantErr: true},
		{name: "start after end", start: "12:00", end: "08:00", wantErr: true},
		{name: "bad start", start: "nope", end: "12:00", wantErr: true},
		{name: "bad end", start: "08:00", end: "nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := NewTimeSlot("slot-1", tt.label, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTimeSlot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && slot.Label != tt.wantLabel {
				t.Errorf("NewTimeSlot() label = %q, want %q", slot.Label, tt.wantLabel)
			}
		})
	}
}

func TestTimeSlotMatches(t *testing.T) {
	slot := TimeSlot{StartHour: 8, EndHour: 12}

	tests := []struct {
		name string
		hour float64
		want bool
	}{
		{name: "before start", hour: 7.99, want: false},
		{name: "start is inclusive", hour: 8, want: true},
		{name: "inside", hour: 9.5, want: true},
		{name: "end is exclusive", hour: 12, want: false},
		{name: "after end", hour: 13, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slot.Matches(tt.hour); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.hour, got, tt.want)
			}
		})
	}
}

func TestParseSlotTable(t *testing.T) {
	slots, err := ParseSlotTable([]string{"08:00-12:00", "Afternoon|13:00-17:00"})
	if err != nil {
		t.Fatalf("ParseSlotTable() error = %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("ParseSlotTable() returned %d slots, want 2", len(slots))
	}
	if slots[0].ID != "slot-1" || slots[0].Label != "08:00 - 12:00" {
		t.Errorf("slot 1 = %+v", slots[0])
	}
	if slots[1].ID != "slot-2" || slots[1].Label != "Afternoon" || slots[1].StartHour != 13 {
		t.Errorf("slot 2 = %+v", slots[1])
	}

	if _, err = ParseSlotTable([]string{"08:00"}); err == nil {
		t.Error("ParseSlotTable() expected error for entry without a range")
	}
	if _, err = ParseSlotTable([]string{"12:00-08:00"}); err == nil {
		t.Error("ParseSlotTable() expected error for inverted range")
	}
}

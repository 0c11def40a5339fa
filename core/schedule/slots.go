package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
)

// TimeSlot is one named interval of a campus slot table. Hours are fractional
// (13.5 == 13:30). Slots need not be contiguous or cover the whole day.
type TimeSlot struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	StartHour float64 `json:"start_hour"`
	EndHour   float64 `json:"end_hour"`
}

// Matches reports whether a fractional hour falls in this slot; the start is
// inclusive, the end exclusive.
func (s TimeSlot) Matches(hour float64) bool {
	return s.StartHour <= hour && hour < s.EndHour
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// ClockHour parses a 24-hour or AM/PM clock string into a fractional hour.
func ClockHour(s string) (float64, error) {
	s = strings.ToUpper(core.CleanString(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600, nil
		}
	}
	return 0, errors.Errorf("unrecognized clock value %q", s)
}

// FormatHour renders a fractional hour as "HH:MM" (seconds discarded).
func FormatHour(hour float64) string {
	h := int(hour)
	m := int((hour - float64(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// NewTimeSlot builds a slot from clock strings. Overlap with other slots is
// not checked here: the bucketer resolves overlaps by declaration order.
func NewTimeSlot(id, label, start, end string) (TimeSlot, error) {
	startHour, err := ClockHour(start)
	if err != nil {
		return TimeSlot{}, errors.Wrapf(err, "slot %q start", id)
	}
	endHour, err := ClockHour(end)
	if err != nil {
		return TimeSlot{}, errors.Wrapf(err, "slot %q end", id)
	}
	if startHour >= endHour {
		return TimeSlot{}, errors.Errorf("slot %q: start %s is not before end %s", id, start, end)
	}
	if label == "" {
		label = FormatHour(startHour) + " - " + FormatHour(endHour)
	}
	return TimeSlot{ID: id, Label: label, StartHour: startHour, EndHour: endHour}, nil
}

// ParseSlotTable builds the campus slot table from config entries of the form
// "HH:mm-HH:mm" or "Label|HH:mm-HH:mm".
func ParseSlotTable(entries []string) ([]TimeSlot, error) {
	slots := make([]TimeSlot, 0, len(entries))
	for i, entry := range entries {
		label := ""
		spec := core.CleanString(entry)
		if idx := strings.Index(spec, "|"); idx >= 0 {
			label = core.CleanString(spec[:idx])
			spec = core.CleanString(spec[idx+1:])
		}
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("slot entry %q: want \"start-end\"", entry)
		}
		slot, err := NewTimeSlot(fmt.Sprintf("slot-%d", i+1), label, parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

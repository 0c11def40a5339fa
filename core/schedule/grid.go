package schedule

import (
	"fmt"
	"sort"
	"time"
)

var kindTitles = map[Kind]string{
	KindMilestone: "Milestone",
	KindMeeting:   "Meeting",
	KindTask:      "Task",
	KindIssue:     "Issue",
}

// BuildWeekGrid places events into the weekly day/slot grid. It is pure:
// identical inputs yield identical grids, and the grid is rebuilt from
// scratch on every call (never patched incrementally).
//
// Placement rules:
//   - only events whose anchor lies within the week window are retained;
//     events without a usable anchor are dropped silently;
//   - day index is Monday-first: (weekday + 6) % 7;
//   - the first declared slot with start <= hour < end wins, so overlapping
//     slots resolve by declaration order;
//   - events matching no slot are grouped into overflow rows keyed by
//     (day, hour floored to the minute), sorted ascending by minute-of-day
//     then day, labelled "<Kind> (HH:MM)" after their first event;
//   - cell contents keep input order; no merging or deduplication.
func BuildWeekGrid(week WeekWindow, slots []TimeSlot, events []Event) WeekGrid {
	grid := WeekGrid{
		Week:     week,
		SlotRows: make([]SlotRow, len(slots)),
	}
	for i, slot := range slots {
		grid.SlotRows[i].Slot = slot
	}

	overflow := make(map[[2]int]int) // (day, minuteOfDay) -> index in OverflowRows

	for _, ev := range events {
		at, ok := ev.Anchor()
		if !ok || !week.Contains(at) {
			continue
		}

		day := (int(at.Weekday()) + 6) % 7 // Monday = 0 .. Sunday = 6
		hour := fractionalHour(at)

		placed := false
		for i := range grid.SlotRows {
			if grid.SlotRows[i].Slot.Matches(hour) {
				grid.SlotRows[i].Cells[day] = append(grid.SlotRows[i].Cells[day], ev)
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		minute := at.Hour()*60 + at.Minute()
		key := [2]int{day, minute}
		idx, ok := overflow[key]
		if !ok {
			idx = len(grid.OverflowRows)
			overflow[key] = idx
			grid.OverflowRows = append(grid.OverflowRows, OverflowRow{
				DayIndex:    day,
				MinuteOfDay: minute,
				Label:       fmt.Sprintf("%s (%02d:%02d)", kindTitles[ev.Kind()], minute/60, minute%60),
			})
		}
		grid.OverflowRows[idx].Events = append(grid.OverflowRows[idx].Events, ev)
	}

	sort.SliceStable(grid.OverflowRows, func(i, j int) bool {
		a, b := grid.OverflowRows[i], grid.OverflowRows[j]
		if a.MinuteOfDay != b.MinuteOfDay {
			return a.MinuteOfDay < b.MinuteOfDay
		}
		return a.DayIndex < b.DayIndex
	})

	return grid
}

func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

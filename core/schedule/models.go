package schedule

import (
	"encoding/json"
	"time"

	"github.com/volatiletech/null/v8"
)

// Kind discriminates the scheduled event union.
type Kind string

const (
	KindMilestone Kind = "milestone"
	KindMeeting   Kind = "meeting"
	KindTask      Kind = "task"
	KindIssue     Kind = "issue"
)

// Event is a scheduled item placeable on the weekly grid.
// Anchor reports ok=false when the item has no usable timestamp; such events
// are dropped silently by the bucketer (partial data is common during
// incremental loads).
type Event interface {
	Kind() Kind
	EventID() string
	Group() string
	Title() string
	Anchor() (time.Time, bool)
}

type MilestoneEvent struct {
	ID      string    `json:"id"`
	GroupID string    `json:"group_id"`
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	DueAt   null.Time `json:"due_at"`
}

func (e MilestoneEvent) Kind() Kind      { return KindMilestone }
func (e MilestoneEvent) EventID() string { return e.ID }
func (e MilestoneEvent) Group() string   { return e.GroupID }
func (e MilestoneEvent) Title() string   { return e.Name }

func (e MilestoneEvent) Anchor() (time.Time, bool) {
	return e.DueAt.Time, e.DueAt.Valid
}

type MeetingEvent struct {
	ID          string      `json:"id"`
	GroupID     string      `json:"group_id"`
	Description string      `json:"description"`
	MeetingDate null.Time   `json:"meeting_date"`
	StartAt     null.String `json:"start_at"` // "HH:mm[:ss]" clock on MeetingDate's day
	EndAt       null.String `json:"end_at"`
	IsHeld      bool        `json:"is_held"`
	HasMinutes  bool        `json:"has_minutes"`
}

func (e MeetingEvent) Kind() Kind      { return KindMeeting }
func (e MeetingEvent) EventID() string { return e.ID }
func (e MeetingEvent) Group() string   { return e.GroupID }
func (e MeetingEvent) Title() string   { return e.Description }

// Anchor is the meeting date at its start clock. A missing or unparsable
// start clock anchors at midnight; only a missing date drops the event.
func (e MeetingEvent) Anchor() (time.Time, bool) {
	if !e.MeetingDate.Valid {
		return time.Time{}, false
	}
	d := e.MeetingDate.Time
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	if !e.StartAt.Valid {
		return day, true
	}
	hour, err := ClockHour(e.StartAt.String)
	if err != nil {
		return day, true
	}
	return day.Add(time.Duration(hour * float64(time.Hour))), true
}

type TaskEvent struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	TaskName string    `json:"title"`
	Deadline null.Time `json:"deadline"`
	IsActive bool      `json:"is_active"`
}

func (e TaskEvent) Kind() Kind      { return KindTask }
func (e TaskEvent) EventID() string { return e.ID }
func (e TaskEvent) Group() string   { return e.GroupID }
func (e TaskEvent) Title() string   { return e.TaskName }

func (e TaskEvent) Anchor() (time.Time, bool) {
	return e.Deadline.Time, e.Deadline.Valid
}

type IssueEvent struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	Name     string    `json:"name"`
	Status   string    `json:"status"`
	Deadline null.Time `json:"deadline"`
}

func (e IssueEvent) Kind() Kind      { return KindIssue }
func (e IssueEvent) EventID() string { return e.ID }
func (e IssueEvent) Group() string   { return e.GroupID }
func (e IssueEvent) Title() string   { return e.Name }

func (e IssueEvent) Anchor() (time.Time, bool) {
	return e.Deadline.Time, e.Deadline.Valid
}

// MarshalJSON tags each event with its kind so API consumers can switch on it.

func (e MilestoneEvent) MarshalJSON() ([]byte, error) {
	type alias MilestoneEvent
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		alias
	}{e.Kind(), alias(e)})
}

func (e MeetingEvent) MarshalJSON() ([]byte, error) {
	type alias MeetingEvent
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		alias
	}{e.Kind(), alias(e)})
}

func (e TaskEvent) MarshalJSON() ([]byte, error) {
	type alias TaskEvent
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		alias
	}{e.Kind(), alias(e)})
}

func (e IssueEvent) MarshalJSON() ([]byte, error) {
	type alias IssueEvent
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		alias
	}{e.Kind(), alias(e)})
}

// WeekWindow is a selected calendar week (Monday..Sunday in practice; the
// window itself is whatever the semester planner supplies).
type WeekWindow struct {
	WeekNumber int       `json:"week_number"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	IsVacation bool      `json:"is_vacation"`
}

// Contains reports whether t falls within the window. EndAt is inclusive
// through the last instant of its calendar day.
func (w WeekWindow) Contains(t time.Time) bool {
	if t.Before(w.StartAt) {
		return false
	}
	e := w.EndAt
	end := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), e.Location())
	return !t.After(end)
}

type (
	// SlotRow holds one configured time slot's events, one cell per weekday
	// (index 0 = Monday .. 6 = Sunday).
	SlotRow struct {
		Slot  TimeSlot   `json:"slot"`
		Cells [7][]Event `json:"cells"`
	}

	// OverflowRow is synthesized for events whose hour matches no configured
	// slot; one row per populated (day, minute-of-day) pair.
	OverflowRow struct {
		DayIndex    int     `json:"day_index"`
		MinuteOfDay int     `json:"minute_of_day"`
		Label       string  `json:"label"`
		Events      []Event `json:"events"`
	}

	WeekGrid struct {
		Week         WeekWindow    `json:"week"`
		SlotRows     []SlotRow     `json:"slot_rows"`
		OverflowRows []OverflowRow `json:"overflow_rows"`
	}
)

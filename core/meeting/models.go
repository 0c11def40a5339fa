package meeting

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
)

// Occurrence is one entry of a group's meeting schedule as supplied by the
// capstone API. IsMinute and IsIssue are derived server-side from related
// records; this core never patches them locally.
type Occurrence struct {
	ID          string      `json:"id"`
	GroupID     string      `json:"group_id"`
	Description string      `json:"description"`
	MeetingDate null.Time   `json:"meeting_date"`
	StartAt     null.String `json:"start_at"` // "HH:mm[:ss]"
	EndAt       null.String `json:"end_at"`
	MeetingLink string      `json:"meeting_link"`
	IsMeeting   bool        `json:"is_meeting"`
	IsMinute    bool        `json:"is_minute"`
	IsIssue     bool        `json:"is_issue"`
}

// Minutes is the stored minutes record for one meeting occurrence. At most
// one record exists per occurrence; attendance is a single text blob (see
// the attendance codec).
type Minutes struct {
	ID             string    `json:"id"`
	MeetingDateID  string    `json:"meeting_date_id"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Attendance     string    `json:"attendance"`
	MeetingContent string    `json:"meeting_content"`
	Other          string    `json:"other"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"` // UTC
}

// AttendanceRecord is one roster member's attendance for a meeting. The list
// always mirrors the current roster in length and order.
type AttendanceRecord struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Role       string `json:"role"`
	Attended   bool   `json:"attended"`
	Reason     string `json:"reason"`
}

// MinutesForm is the save payload for a meeting occurrence's minutes.
type MinutesForm struct {
	StartAt        time.Time          `json:"start_at" validate:"required"`
	EndAt          time.Time          `json:"end_at" validate:"required"`
	MeetingContent string             `json:"meeting_content" validate:"required"`
	Other          string             `json:"other"`
	Attendance     []AttendanceRecord `json:"attendance"`
	CreatedBy      string             `json:"-"`
}

func (f *MinutesForm) Validate(validate *validator.Validate) error {
	f.MeetingContent = core.CleanString(f.MeetingContent)
	f.Other = core.CleanString(f.Other)
	return validate.Struct(f)
}

// MinutesView is the resolved state of an opened meeting occurrence.
// Minutes is nil when none exist yet (or the lookup failed — both resolve to
// "create new"); Previous is the nearest earlier occurrence's minutes and is
// only populated when Minutes is nil.
type MinutesView struct {
	Meeting    Occurrence         `json:"meeting"`
	Minutes    *Minutes           `json:"minutes"`
	Attendance []AttendanceRecord `json:"attendance"`
	Previous   *Minutes           `json:"previous_minutes,omitempty"`
}

// SaveResult carries the saved record plus the mandatorily re-fetched meeting
// list (IsMinute/IsIssue flags are server-derived, so a local patch would lie).
type SaveResult struct {
	Minutes  Minutes      `json:"minutes"`
	Meetings []Occurrence `json:"meetings"`
}

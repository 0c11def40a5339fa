package meeting

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/group"
)

var (
	// errors
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrMinutesNotFound = errors.New("meeting minutes not found")
)

type (
	Repository interface {
		GroupMeetings(ctx context.Context, groupID string) ([]Occurrence, error)
		// MinutesByMeetingDate returns ErrMinutesNotFound when no record
		// exists for the occurrence.
		MinutesByMeetingDate(ctx context.Context, meetingDateID string) (Minutes, error)
		CreateMinutes(ctx context.Context, min Minutes) (Minutes, error)
		UpdateMinutes(ctx context.Context, min Minutes) (Minutes, error)
		DeleteMinutes(ctx context.Context, id string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		logger  core.Logger
	}
)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, logger: logger}
}

// Open resolves the minutes state for a meeting occurrence. A failed minutes
// lookup resolves to a nil record, same as an absent one: both are
// indistinguishable to the user and both mean "create new". When no record
// exists for the current occurrence, the nearest chronologically preceding
// occurrence with minutes is looked up so the opener can review what was
// discussed last time.
func (svc *Service) Open(ctx context.Context, grp group.Group, meetingID string) (MinutesView, error) {
	meetings, err := svc.repo.GroupMeetings(ctx, grp.ID)
	if err != nil {
		return MinutesView{}, errors.Wrap(err, "listing group meetings")
	}
	idx := indexOf(meetings, meetingID)
	if idx < 0 {
		return MinutesView{}, ErrMeetingNotFound
	}
	view := MinutesView{Meeting: meetings[idx]}

	min, err := svc.repo.MinutesByMeetingDate(ctx, meetingID)
	if err != nil {
		if errors.Cause(err) != ErrMinutesNotFound {
			svc.logger.Warn(fmt.Sprintf("meeting: minutes lookup failed for %s: %v", meetingID, err), err)
		}
		view.Attendance = DecodeAttendance("", grp.Students)
		view.Previous = svc.previousMinutes(ctx, meetings, idx)
		return view, nil
	}

	view.Minutes = &min
	view.Attendance = DecodeAttendance(min.Attendance, grp.Students)
	return view, nil
}

// previousMinutes scans backward in time from the current occurrence and
// fetches the first earlier occurrence's minutes. Lookback failures fail
// open: the view is merely missing its convenience context.
func (svc *Service) previousMinutes(ctx context.Context, meetings []Occurrence, idx int) *Minutes {
	current := meetings[idx]
	if !current.MeetingDate.Valid {
		return nil
	}

	var prev *Occurrence
	for i := range meetings {
		occ := meetings[i]
		if i == idx || !occ.IsMinute || !occ.MeetingDate.Valid {
			continue
		}
		if !occ.MeetingDate.Time.Before(current.MeetingDate.Time) {
			continue
		}
		if prev == nil || occ.MeetingDate.Time.After(prev.MeetingDate.Time) {
			prev = &meetings[i]
		}
	}
	if prev == nil {
		return nil
	}

	min, err := svc.repo.MinutesByMeetingDate(ctx, prev.ID)
	if err != nil {
		if errors.Cause(err) != ErrMinutesNotFound {
			svc.logger.Warn(fmt.Sprintf("meeting: previous minutes lookup failed for %s: %v", prev.ID, err), err)
		}
		return nil
	}
	return &min
}

// Save creates the occurrence's minutes record if none exists, else updates
// it, then re-fetches the group's meeting list. Callers must validate the
// form first; save-path failures are surfaced, never swallowed.
func (svc *Service) Save(ctx context.Context, grp group.Group, meetingID string, form MinutesForm) (SaveResult, error) {
	min := Minutes{
		MeetingDateID:  meetingID,
		StartAt:        form.StartAt,
		EndAt:          form.EndAt,
		Attendance:     EncodeAttendance(ReconcileAttendance(grp, form.Attendance)),
		MeetingContent: form.MeetingContent,
		Other:          form.Other,
		CreatedBy:      form.CreatedBy,
	}

	existing, err := svc.repo.MinutesByMeetingDate(ctx, meetingID)
	switch {
	case err == nil:
		min.ID = existing.ID
		min.CreatedBy = existing.CreatedBy
		min.CreatedAt = existing.CreatedAt
		min, err = svc.repo.UpdateMinutes(ctx, min)
		if err != nil {
			return SaveResult{}, errors.Wrap(err, "updating minutes")
		}
	case errors.Cause(err) == ErrMinutesNotFound:
		min.CreatedAt = time.Now().UTC()
		min, err = svc.repo.CreateMinutes(ctx, min)
		if err != nil {
			return SaveResult{}, errors.Wrap(err, "creating minutes")
		}
	default:
		return SaveResult{}, errors.Wrap(err, "checking existing minutes")
	}

	meetings, err := svc.repo.GroupMeetings(ctx, grp.ID)
	if err != nil {
		return SaveResult{}, errors.Wrap(err, "refreshing group meetings")
	}

	svc.notifyMinutesSaved(grp, min)

	return SaveResult{Minutes: min, Meetings: meetings}, nil
}

// Delete removes the occurrence's minutes record and re-fetches the meeting
// list. Deleting a record that does not exist surfaces ErrMinutesNotFound.
func (svc *Service) Delete(ctx context.Context, grp group.Group, meetingID string) ([]Occurrence, error) {
	existing, err := svc.repo.MinutesByMeetingDate(ctx, meetingID)
	if err != nil {
		if errors.Cause(err) == ErrMinutesNotFound {
			return nil, ErrMinutesNotFound
		}
		return nil, errors.Wrap(err, "checking existing minutes")
	}

	if err := svc.repo.DeleteMinutes(ctx, existing.ID); err != nil {
		return nil, errors.Wrap(err, "deleting minutes")
	}

	meetings, err := svc.repo.GroupMeetings(ctx, grp.ID)
	if err != nil {
		return nil, errors.Wrap(err, "refreshing group meetings")
	}
	return meetings, nil
}

func (svc *Service) notifyMinutesSaved(grp group.Group, min Minutes) {
	to := make([]mail.Address, 0, len(grp.Students))
	for _, s := range grp.Students {
		if s.Email != "" {
			to = append(to, mail.Address{Name: s.Name, Address: s.Email})
		}
	}
	if len(to) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           to,
		Subject:      fmt.Sprintf("Meeting minutes updated - %s", grp.GroupCode),
		TemplateName: "minutes-saved",
		TemplateData: struct {
			GroupCode   string
			ProjectName string
			MeetingDate string
			CreatedBy   string
		}{
			GroupCode:   grp.GroupCode,
			ProjectName: grp.ProjectName,
			MeetingDate: min.StartAt.Format("Mon, 02 Jan 2006 15:04"),
			CreatedBy:   min.CreatedBy,
		},
	})
}

func indexOf(meetings []Occurrence, meetingID string) int {
	for i, occ := range meetings {
		if occ.ID == meetingID {
			return i
		}
	}
	return -1
}

package capstone

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/schedule"
)

var _ schedule.Repository = (*Client)(nil)

type (
	milestoneDTO struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		EndAt       string `json:"endAt"`
		Status      string `json:"status"`
	}

	taskDTO struct {
		ID           string `json:"id"`
		GroupID      string `json:"groupId"`
		Title        string `json:"title"`
		Deadline     string `json:"deadline"`
		Status       string `json:"status"`
		Priority     string `json:"priority"`
		IsActive     bool   `json:"isActive"`
		AssigneeName string `json:"assigneeName"`
	}

	issueDTO struct {
		ID       string `json:"id"`
		GroupID  string `json:"groupId"`
		Name     string `json:"name"`
		Deadline string `json:"deadline"`
		Status   string `json:"status"`
	}

	meetingDTO struct {
		ID          string      `json:"id"`
		GroupID     string      `json:"groupId"`
		Description string      `json:"description"`
		MeetingDate string      `json:"meetingDate"`
		StartAt     null.String `json:"startAt"`
		EndAt       null.String `json:"endAt"`
		MeetingLink string      `json:"meetingLink"`
		IsMeeting   bool        `json:"isMeeting"`
		IsMinute    bool        `json:"isMinute"`
		IsIssue     bool        `json:"isIssue"`
	}
)

func (c *Client) Milestones(ctx context.Context, groupID string) ([]schedule.Event, error) {
	var dtos []milestoneDTO
	if err := c.get(ctx, "/groups/"+groupID+"/milestones", &dtos); err != nil {
		return nil, errors.Wrap(err, "fetching milestones")
	}
	events := make([]schedule.Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, schedule.MilestoneEvent{
			ID:      dto.ID,
			GroupID: groupID,
			Name:    dto.Name,
			Status:  dto.Status,
			DueAt:   parseTimestamp(dto.EndAt),
		})
	}
	return events, nil
}

func (c *Client) Meetings(ctx context.Context, groupID string) ([]schedule.Event, error) {
	dtos, err := c.groupMeetingDTOs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	events := make([]schedule.Event, 0, len(dtos))
	for _, dto := range dtos {
		if !dto.IsMeeting {
			continue
		}
		events = append(events, schedule.MeetingEvent{
			ID:          dto.ID,
			GroupID:     dto.GroupID,
			Description: dto.Description,
			MeetingDate: parseTimestamp(dto.MeetingDate),
			StartAt:     dto.StartAt,
			EndAt:       dto.EndAt,
			IsHeld:      dto.IsMeeting,
			HasMinutes:  dto.IsMinute,
		})
	}
	return events, nil
}

func (c *Client) Tasks(ctx context.Context, groupID string) ([]schedule.Event, error) {
	var dtos []taskDTO
	if err := c.get(ctx, "/groups/"+groupID+"/tasks", &dtos); err != nil {
		return nil, errors.Wrap(err, "fetching tasks")
	}
	events := make([]schedule.Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, schedule.TaskEvent{
			ID:       dto.ID,
			GroupID:  groupID,
			TaskName: dto.Title,
			Deadline: parseTimestamp(dto.Deadline),
			IsActive: dto.IsActive,
		})
	}
	return events, nil
}

func (c *Client) Issues(ctx context.Context, groupID string) ([]schedule.Event, error) {
	var dtos []issueDTO
	if err := c.get(ctx, "/groups/"+groupID+"/issues", &dtos); err != nil {
		return nil, errors.Wrap(err, "fetching issues")
	}
	events := make([]schedule.Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, schedule.IssueEvent{
			ID:       dto.ID,
			GroupID:  groupID,
			Name:     dto.Name,
			Status:   dto.Status,
			Deadline: parseTimestamp(dto.Deadline),
		})
	}
	return events, nil
}

func (c *Client) groupMeetingDTOs(ctx context.Context, groupID string) ([]meetingDTO, error) {
	var dtos []meetingDTO
	if err := c.get(ctx, "/groups/"+groupID+"/meetings", &dtos); err != nil {
		return nil, errors.Wrap(err, "fetching meetings")
	}
	return dtos, nil
}

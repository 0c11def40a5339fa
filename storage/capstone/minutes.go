package capstone

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/meeting"
)

var _ meeting.Repository = (*Client)(nil)

type minutesDTO struct {
	ID             string `json:"id"`
	MeetingDateID  string `json:"meetingDateId"`
	StartAt        string `json:"startAt"`
	EndAt          string `json:"endAt"`
	Attendance     string `json:"attendance"`
	MeetingContent string `json:"meetingContent"`
	Other          string `json:"other"`
	CreateBy       string `json:"createBy"`
	CreateAt       string `json:"createAt"`
}

func (dto minutesDTO) toDomain() meeting.Minutes {
	return meeting.Minutes{
		ID:             dto.ID,
		MeetingDateID:  dto.MeetingDateID,
		StartAt:        parseTimestamp(dto.StartAt).Time,
		EndAt:          parseTimestamp(dto.EndAt).Time,
		Attendance:     dto.Attendance,
		MeetingContent: dto.MeetingContent,
		Other:          dto.Other,
		CreatedBy:      dto.CreateBy,
		CreatedAt:      parseTimestamp(dto.CreateAt).Time,
	}
}

func toMinutesDTO(min meeting.Minutes) minutesDTO {
	return minutesDTO{
		ID:             min.ID,
		MeetingDateID:  min.MeetingDateID,
		StartAt:        min.StartAt.Format(time.RFC3339),
		EndAt:          min.EndAt.Format(time.RFC3339),
		Attendance:     min.Attendance,
		MeetingContent: min.MeetingContent,
		Other:          min.Other,
		CreateBy:       min.CreatedBy,
		CreateAt:       min.CreatedAt.Format(time.RFC3339),
	}
}

// GroupMeetings lists a group's meeting schedule as occurrence records
// (the calendar feed variant of the same endpoint lives in schedule.go).
func (c *Client) GroupMeetings(ctx context.Context, groupID string) ([]meeting.Occurrence, error) {
	dtos, err := c.groupMeetingDTOs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	occs := make([]meeting.Occurrence, 0, len(dtos))
	for _, dto := range dtos {
		occs = append(occs, meeting.Occurrence{
			ID:          dto.ID,
			GroupID:     dto.GroupID,
			Description: dto.Description,
			MeetingDate: parseTimestamp(dto.MeetingDate),
			StartAt:     dto.StartAt,
			EndAt:       dto.EndAt,
			MeetingLink: dto.MeetingLink,
			IsMeeting:   dto.IsMeeting,
			IsMinute:    dto.IsMinute,
			IsIssue:     dto.IsIssue,
		})
	}
	return occs, nil
}

func (c *Client) MinutesByMeetingDate(ctx context.Context, meetingDateID string) (meeting.Minutes, error) {
	var dto minutesDTO
	if err := c.get(ctx, "/meetings/"+meetingDateID+"/minutes", &dto); err != nil {
		if statusCode(err) == 404 {
			return meeting.Minutes{}, meeting.ErrMinutesNotFound
		}
		return meeting.Minutes{}, errors.Wrap(err, "fetching minutes")
	}
	if dto.ID == "" {
		// some deployments answer 200 with an empty body instead of 404
		return meeting.Minutes{}, meeting.ErrMinutesNotFound
	}
	return dto.toDomain(), nil
}

func (c *Client) CreateMinutes(ctx context.Context, min meeting.Minutes) (meeting.Minutes, error) {
	var dto minutesDTO
	if err := c.send(ctx, "POST", "/minutes", toMinutesDTO(min), &dto); err != nil {
		return meeting.Minutes{}, errors.Wrap(err, "creating minutes")
	}
	return dto.toDomain(), nil
}

func (c *Client) UpdateMinutes(ctx context.Context, min meeting.Minutes) (meeting.Minutes, error) {
	var dto minutesDTO
	if err := c.send(ctx, "PUT", "/minutes/"+min.ID, toMinutesDTO(min), &dto); err != nil {
		return meeting.Minutes{}, errors.Wrap(err, "updating minutes")
	}
	return dto.toDomain(), nil
}

func (c *Client) DeleteMinutes(ctx context.Context, id string) error {
	if err := c.send(ctx, "DELETE", "/minutes/"+id, nil, nil); err != nil {
		if statusCode(err) == 404 {
			return meeting.ErrMinutesNotFound
		}
		return errors.Wrap(err, "deleting minutes")
	}
	return nil
}

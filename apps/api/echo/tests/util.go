package tests

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/assistant"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/group"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/meeting"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/schedule"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

var testGroup = group.Group{
	ID:          "g1",
	ProjectName: "Capstone Portal",
	GroupCode:   "SEP490-G1",
	Students: []group.Student{
		{ID: "s1", Name: "Alice", RollNumber: "SE001", Role: "leader", Email: "alice@test.test"},
		{ID: "s2", Name: "Bob", RollNumber: "SE002", Role: "secretary", Email: "bob@test.test"},
	},
	Supervisors: []string{"supervisor1"},
}

type fakeGroupRepo struct{}

func (r *fakeGroupRepo) GetGroup(_ context.Context, groupID string) (group.Group, error) {
	if groupID != testGroup.ID {
		return group.Group{}, group.ErrNotFound
	}
	return testGroup, nil
}

type fakeScheduleRepo struct {
	milestones []schedule.Event
	meetings   []schedule.Event
	tasks      []schedule.Event
	issues     []schedule.Event
}

func (r *fakeScheduleRepo) Milestones(_ context.Context, _ string) ([]schedule.Event, error) {
	return r.milestones, nil
}
func (r *fakeScheduleRepo) Meetings(_ context.Context, _ string) ([]schedule.Event, error) {
	return r.meetings, nil
}
func (r *fakeScheduleRepo) Tasks(_ context.Context, _ string) ([]schedule.Event, error) {
	return r.tasks, nil
}
func (r *fakeScheduleRepo) Issues(_ context.Context, _ string) ([]schedule.Event, error) {
	return r.issues, nil
}

type fakeMeetingRepo struct {
	meetings []meeting.Occurrence
	minutes  map[string]meeting.Minutes // meetingDateID -> record
}

func (r *fakeMeetingRepo) GroupMeetings(_ context.Context, _ string) ([]meeting.Occurrence, error) {
	return r.meetings, nil
}

func (r *fakeMeetingRepo) MinutesByMeetingDate(_ context.Context, meetingDateID string) (meeting.Minutes, error) {
	min, ok := r.minutes[meetingDateID]
	if !ok {
		return meeting.Minutes{}, meeting.ErrMinutesNotFound
	}
	return min, nil
}

func (r *fakeMeetingRepo) CreateMinutes(_ context.Context, min meeting.Minutes) (meeting.Minutes, error) {
	min.ID = "min-" + min.MeetingDateID
	r.minutes[min.MeetingDateID] = min
	return min, nil
}

func (r *fakeMeetingRepo) UpdateMinutes(_ context.Context, min meeting.Minutes) (meeting.Minutes, error) {
	r.minutes[min.MeetingDateID] = min
	return min, nil
}

func (r *fakeMeetingRepo) DeleteMinutes(_ context.Context, id string) error {
	for key, min := range r.minutes {
		if min.ID == id {
			delete(r.minutes, key)
			return nil
		}
	}
	return meeting.ErrMinutesNotFound
}

type fakeBackend struct {
	mu     sync.Mutex
	result assistant.TaskResult
	nextID int
}

func (b *fakeBackend) SubmitTask(_ context.Context, _, _ string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return "task-" + strconv.Itoa(b.nextID), nil
}

func (b *fakeBackend) TaskResult(_ context.Context, _ string) (assistant.TaskResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result, nil
}

func (b *fakeBackend) setResult(res assistant.TaskResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result = res
}

func testDate(day int) time.Time {
	return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
}

func testOccurrence(id string, day int, withMinutes bool) meeting.Occurrence {
	return meeting.Occurrence{
		ID:          id,
		GroupID:     testGroup.ID,
		Description: "Weekly sync",
		MeetingDate: null.TimeFrom(testDate(day)),
		StartAt:     null.StringFrom("09:00"),
		IsMeeting:   true,
		IsMinute:    withMinutes,
	}
}

package schedule

import (
	"context"
	"fmt"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
)

type (
	// Repository supplies the four event feeds for a group. Implementations
	// live behind the capstone API; feeds are independent of each other.
	Repository interface {
		Milestones(ctx context.Context, groupID string) ([]Event, error)
		Meetings(ctx context.Context, groupID string) ([]Event, error)
		Tasks(ctx context.Context, groupID string) ([]Event, error)
		Issues(ctx context.Context, groupID string) ([]Event, error)
	}

	Service struct {
		repo   Repository
		slots  []TimeSlot
		logger core.Logger
	}
)

func NewService(repo Repository, slots []TimeSlot, logger core.Logger) *Service {
	return &Service{repo: repo, slots: slots, logger: logger}
}

func (svc *Service) Slots() []TimeSlot { return svc.slots }

// WeekGrid fetches the feeds for the given groups and buckets them into the
// week's grid. A failed feed degrades to an empty list so partial loads still
// render; feeds are fetched sequentially (no coordination needed, see
// BuildWeekGrid purity).
func (svc *Service) WeekGrid(ctx context.Context, week WeekWindow, groupIDs ...string) (WeekGrid, error) {
	var events []Event
	for _, groupID := range groupIDs {
		events = append(events, svc.feed(ctx, "milestones", groupID, svc.repo.Milestones)...)
		events = append(events, svc.feed(ctx, "meetings", groupID, svc.repo.Meetings)...)
		events = append(events, svc.feed(ctx, "tasks", groupID, svc.repo.Tasks)...)
		events = append(events, svc.feed(ctx, "issues", groupID, svc.repo.Issues)...)
	}
	return BuildWeekGrid(week, svc.slots, events), nil
}

func (svc *Service) feed(
	ctx context.Context,
	name, groupID string,
	fetch func(context.Context, string) ([]Event, error),
) []Event {
	events, err := fetch(ctx, groupID)
	if err != nil {
		// read-side fail-open: an unavailable feed renders as an empty one
		svc.logger.Warn(fmt.Sprintf("schedule: %s feed unavailable for group %s: %v", name, groupID, err), err)
		return nil
	}
	return events
}

package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/schedule"
)

func Test_calendarApi_weekGrid(t *testing.T) {
	app, deps := setup(t)

	deps.schedule.milestones = []schedule.Event{
		schedule.MilestoneEvent{
			ID: "m1", GroupID: "g1", Name: "Report 1",
			DueAt: null.TimeFrom(time.Date(2024, time.January, 17, 9, 30, 0, 0, time.UTC)),
		},
	}
	deps.schedule.meetings = []schedule.Event{
		schedule.MeetingEvent{
			ID: "e1", GroupID: "g1", Description: "Late sync",
			MeetingDate: null.TimeFrom(time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC)),
			StartAt:     null.StringFrom("23:30"),
			IsHeld:      true,
		},
	}

	studentToken := getToken(t, "alice", "student:")
	path := "/v1/groups/g1/calendar?week=3&start=2024-01-15&end=2024-01-21"

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, path)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("bad week selection", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/groups/g1/calendar?week=3&start=garbage&end=2024-01-21", studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d, want 400; body = %s", rec.Code, rec.Body.String())
		}
		var fields map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fields); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if fields["start"] == "" {
			t.Errorf("fields = %v, want a start error", fields)
		}
	})

	t.Run("grid", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, path, studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
		}

		var res struct {
			Slots []schedule.TimeSlot `json:"slots"`
			Grid  struct {
				Week     schedule.WeekWindow `json:"week"`
				SlotRows []struct {
					Slot  schedule.TimeSlot           `json:"slot"`
					Cells [7][]map[string]interface{} `json:"cells"`
				} `json:"slot_rows"`
				OverflowRows []struct {
					DayIndex    int                      `json:"day_index"`
					MinuteOfDay int                      `json:"minute_of_day"`
					Label       string                   `json:"label"`
					Events      []map[string]interface{} `json:"events"`
				} `json:"overflow_rows"`
			} `json:"grid"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}

		if len(res.Slots) != 2 {
			t.Errorf("slots = %d, want 2", len(res.Slots))
		}
		if res.Grid.Week.WeekNumber != 3 {
			t.Errorf("week number = %d, want 3", res.Grid.Week.WeekNumber)
		}

		// milestone lands Wednesday morning
		wed := res.Grid.SlotRows[0].Cells[2]
		if len(wed) != 1 || wed[0]["kind"] != "milestone" || wed[0]["id"] != "m1" {
			t.Errorf("Wednesday morning cell = %v", wed)
		}

		// the late meeting matches no slot and overflows
		if len(res.Grid.OverflowRows) != 1 {
			t.Fatalf("overflow rows = %v, want 1", res.Grid.OverflowRows)
		}
		row := res.Grid.OverflowRows[0]
		if row.DayIndex != 1 || row.MinuteOfDay != 23*60+30 || row.Label != "Meeting (23:30)" {
			t.Errorf("overflow row = %+v", row)
		}
	})
}

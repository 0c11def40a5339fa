package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/meeting"
)

func Test_meetingApi_minutes(t *testing.T) {
	app, deps := setup(t)

	deps.meetings.meetings = []meeting.Occurrence{
		testOccurrence("md1", 8, true),
		testOccurrence("md2", 15, false),
	}
	deps.meetings.minutes["md1"] = meeting.Minutes{
		ID:             "min-md1",
		MeetingDateID:  "md1",
		StartAt:        time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC),
		EndAt:          time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC),
		Attendance:     "Alice (SE001): Present\nBob (SE002): Absent - sick",
		MeetingContent: "Kickoff",
		CreatedBy:      "supervisor1",
	}

	studentToken := getToken(t, "alice", "student:")
	supervisorToken := getToken(t, "supervisor1", "supervisor:")

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/groups/g1/meetings/md1/minutes")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("unknown group", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/groups/nope/meetings/md1/minutes", studentToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/groups/g1/meetings/nope/minutes", studentToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("open with existing record", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/groups/g1/meetings/md1/minutes", studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
		}
		var view meeting.MinutesView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if view.Minutes == nil || view.Minutes.ID != "min-md1" {
			t.Fatalf("minutes = %+v, want min-md1", view.Minutes)
		}
		if len(view.Attendance) != 2 || view.Attendance[1].Reason != "sick" {
			t.Errorf("attendance = %+v", view.Attendance)
		}
		if view.Previous != nil {
			t.Errorf("previous = %+v, want nil", view.Previous)
		}
	})

	t.Run("open blank with previous minutes", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/groups/g1/meetings/md2/minutes", studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
		}
		var view meeting.MinutesView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if view.Minutes != nil {
			t.Errorf("minutes = %+v, want nil", view.Minutes)
		}
		if view.Previous == nil || view.Previous.ID != "min-md1" {
			t.Errorf("previous = %+v, want min-md1", view.Previous)
		}
		// roster-seeded blank form
		if len(view.Attendance) != 2 || view.Attendance[0].RollNumber != "SE001" || view.Attendance[0].Attended {
			t.Errorf("attendance = %+v", view.Attendance)
		}
	})

	form := meeting.MinutesForm{
		StartAt:        time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
		EndAt:          time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
		MeetingContent: "Sprint review",
		Attendance: []meeting.AttendanceRecord{
			{Name: "Alice", RollNumber: "SE001", Attended: true},
			{Name: "Bob", RollNumber: "SE002", Attended: true},
		},
	}

	t.Run("save needs supervisor", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/groups/g1/meetings/md2/minutes", studentToken, marchallObj(t, form))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)
	})

	t.Run("save rejects an invalid form", func(t *testing.T) {
		bad := form
		bad.MeetingContent = ""
		req, rec := newAuthRequest(http.MethodPut, "/v1/groups/g1/meetings/md2/minutes", supervisorToken, marchallObj(t, bad))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
		}
		var fields map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fields); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if fields["meeting_content"] == "" {
			t.Errorf("fields = %v, want a meeting_content error", fields)
		}
	})

	t.Run("save rejects end before start", func(t *testing.T) {
		bad := form
		bad.EndAt = bad.StartAt.Add(-time.Hour)
		req, rec := newAuthRequest(http.MethodPut, "/v1/groups/g1/meetings/md2/minutes", supervisorToken, marchallObj(t, bad))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
		}
		var fields map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fields); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if fields["end_at"] != "end time must be after start time" {
			t.Errorf("fields = %v", fields)
		}
	})

	t.Run("save creates and stamps the author", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/groups/g1/meetings/md2/minutes", supervisorToken, marchallObj(t, form))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
		}
		var res meeting.SaveResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if res.Minutes.ID != "min-md2" || res.Minutes.CreatedBy != "supervisor1" {
			t.Errorf("minutes = %+v", res.Minutes)
		}
		if res.Minutes.Attendance != "Alice (SE001): Present\nBob (SE002): Present" {
			t.Errorf("attendance blob = %q", res.Minutes.Attendance)
		}
		if len(res.Meetings) != 2 {
			t.Errorf("meetings = %d, want the re-fetched list of 2", len(res.Meetings))
		}
	})

	t.Run("save updates but keeps authorship", func(t *testing.T) {
		update := form
		update.MeetingContent = "Amended"
		req, rec := newAuthRequest(http.MethodPut, "/v1/groups/g1/meetings/md1/minutes", supervisorToken, marchallObj(t, update))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
		}
		var res meeting.SaveResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if res.Minutes.ID != "min-md1" || res.Minutes.CreatedBy != "supervisor1" || res.Minutes.MeetingContent != "Amended" {
			t.Errorf("minutes = %+v", res.Minutes)
		}
	})

	t.Run("delete needs supervisor", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/groups/g1/meetings/md1/minutes", studentToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/groups/g1/meetings/md1/minutes", supervisorToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
		}
		if _, ok := deps.meetings.minutes["md1"]; ok {
			t.Error("record still present after delete")
		}
	})

	t.Run("delete again is a 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/groups/g1/meetings/md1/minutes", supervisorToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})
}

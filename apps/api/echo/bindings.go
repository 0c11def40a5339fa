package echoapi

import (
	"time"

	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/schedule"
)

var weekDateLayout = "2006-01-02"

// WeekQuery binds the calendar week selection query parameters.
type WeekQuery struct {
	Week     int    `query:"week"`
	StartAt  string `query:"start"`
	EndAt    string `query:"end"`
	Vacation bool   `query:"vacation"`
}

// Window resolves the query into a WeekWindow; bad or missing dates come back
// as field-scoped validation errors.
func (wq *WeekQuery) Window() (schedule.WeekWindow, error) {
	var flds []core.FieldError

	start, err := time.Parse(weekDateLayout, core.CleanString(wq.StartAt))
	if err != nil {
		flds = append(flds, core.FieldError{Field: "start", Error: "a date of the form YYYY-MM-DD is required"})
	}
	end, err := time.Parse(weekDateLayout, core.CleanString(wq.EndAt))
	if err != nil {
		flds = append(flds, core.FieldError{Field: "end", Error: "a date of the form YYYY-MM-DD is required"})
	}
	if len(flds) == 0 && end.Before(start) {
		flds = append(flds, core.FieldError{Field: "end", Error: "end date cannot precede the start date"})
	}
	if len(flds) > 0 {
		return schedule.WeekWindow{}, core.NewValidationError(errors.New("invalid week selection"), flds...)
	}

	return schedule.WeekWindow{
		WeekNumber: wq.Week,
		StartAt:    start,
		EndAt:      end,
		IsVacation: wq.Vacation,
	}, nil
}

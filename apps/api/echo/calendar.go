package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/schedule"
)

type calendarAPI struct {
	svc *schedule.Service
}

func registerCalendarAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *schedule.Service) {
	api := calendarAPI{svc: svc}

	cg := g.Group("/groups/:id", jwt)
	cg.GET("/calendar", api.weekGrid)
}

// weekGrid renders a group's events bucketed into the requested week.
// Any authenticated portal user may read the calendar.
func (api *calendarAPI) weekGrid(ctx echo.Context) error {
	var query WeekQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding week query")
	}
	week, err := query.Window()
	if err != nil {
		return err
	}

	grid, err := api.svc.WeekGrid(ctx.Request().Context(), week, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "building week grid")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"slots": api.svc.Slots(),
		"grid":  grid,
	})
}

package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/group"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/meeting"
)

type meetingAPI struct {
	svc      *meeting.Service
	groups   group.Repository
	validate *validator.Validate
}

func registerMeetingAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *meeting.Service,
	groups group.Repository,
	validate *validator.Validate,
) {
	api := meetingAPI{svc: svc, groups: groups, validate: validate}

	mg := g.Group("/groups/:id/meetings/:meetingId/minutes", jwt)
	mg.GET("", api.open)
	mg.PUT("", api.save, supervisorMiddleware())
	mg.DELETE("", api.delete, supervisorMiddleware())
}

// open resolves the minutes view for a meeting occurrence: the record if one
// exists, a roster-seeded blank otherwise, plus the previous occurrence's
// minutes for reference.
func (api *meetingAPI) open(ctx echo.Context) error {
	grp, err := api.group(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.Open(ctx.Request().Context(), grp, ctx.Param("meetingId"))
	if err != nil {
		if errors.Cause(err) == meeting.ErrMeetingNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "opening meeting minutes")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *meetingAPI) save(ctx echo.Context) error {
	grp, err := api.group(ctx)
	if err != nil {
		return err
	}

	var form meeting.MinutesForm
	if err = ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding minutes form")
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	form.CreatedBy = claims.Username
	if err = form.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Save(ctx.Request().Context(), grp, ctx.Param("meetingId"), form)
	if err != nil {
		return errors.Wrap(err, "saving meeting minutes")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *meetingAPI) delete(ctx echo.Context) error {
	grp, err := api.group(ctx)
	if err != nil {
		return err
	}

	meetings, err := api.svc.Delete(ctx.Request().Context(), grp, ctx.Param("meetingId"))
	if err != nil {
		if errors.Cause(err) == meeting.ErrMinutesNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting meeting minutes")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"meetings": meetings})
}

func (api *meetingAPI) group(ctx echo.Context) (group.Group, error) {
	grp, err := api.groups.GetGroup(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == group.ErrNotFound {
			return group.Group{}, errHttpNotFound
		}
		return group.Group{}, errors.Wrap(err, "fetching group")
	}
	return grp, nil
}

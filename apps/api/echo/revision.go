package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/revision"
)

type revisionApi struct {
	svc      *revision.Service
	validate *validator.Validate
}

func registerRevisionAPI(g *echo.Group, svc *revision.Service, validate *validator.Validate) {
	api := revisionApi{svc: svc, validate: validate}

	rg := g.Group("/revision")
	rg.POST("/schedules", api.create)
	rg.GET("/schedules/active", api.active)
	rg.DELETE("/schedules/active", api.reset)
	rg.GET("/sessions", api.sessions)
	rg.PATCH("/sessions/:id", api.complete)
}

// ScheduleResponse is the create payload: the schedule plus its generated sessions.
type ScheduleResponse struct {
	Schedule revision.Schedule  `json:"schedule"`
	Sessions []revision.Session `json:"sessions"`
}

func (api *revisionApi) create(ctx echo.Context) error {
	var data revision.Setup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Setup")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	sched, sessions, err := api.svc.CreateSchedule(ctx.Request().Context(), userID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ScheduleResponse{Schedule: sched, Sessions: sessions})
}

func (api *revisionApi) active(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	sched, err := api.svc.ActiveSchedule(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Cause(err) == revision.ErrScheduleNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting active schedule")
	}
	return ctx.JSON(http.StatusOK, sched)
}

func (api *revisionApi) reset(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.ResetActiveSchedule(ctx.Request().Context(), userID); err != nil {
		return errors.Wrap(err, "resetting schedule")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *revisionApi) sessions(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var rng DateRange
	if err := rng.Bind(ctx); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	sched, err := api.svc.ActiveSchedule(reqCtx, userID)
	if err != nil {
		if errors.Cause(err) == revision.ErrScheduleNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting active schedule")
	}

	sessions, err := api.svc.Sessions(reqCtx, sched.ID, rng.From, rng.To)
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *revisionApi) complete(ctx echo.Context) error {
	if _, err := getContextUserID(ctx); err != nil {
		return err
	}

	var data revision.CompleteSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CompleteSession")
	}

	sess, err := api.svc.Complete(ctx.Request().Context(), ctx.Param("id"), data.Notes)
	if err != nil {
		if errors.Cause(err) == revision.ErrSessionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "completing session")
	}
	return ctx.JSON(http.StatusOK, sess)
}

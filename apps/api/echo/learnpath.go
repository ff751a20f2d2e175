package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/learnpath"
)

type learnPathApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerLearnPathAPI(g *echo.Group, svc *course.Service, validate *validator.Validate) {
	api := learnPathApi{svc: svc, validate: validate}

	lg := g.Group("/learning-path")
	lg.POST("/layout", api.layout)
}

// LayoutRequest describes one path screen render: the catalog slice to lay
// out, the container dimensions and the caller's per-course progress state.
type LayoutRequest struct {
	learnpath.PathConfig

	Subjects         []string           `json:"subjects"`
	ContainerWidth   float64            `json:"container_width" validate:"required,gt=0"`
	ContainerHeight  float64            `json:"container_height" validate:"required,gt=0"`
	Progress         map[string]float64 `json:"progress"`
	CompletedCourses []string           `json:"completed_courses"`
}

func (r *LayoutRequest) Validate(validate *validator.Validate) error {
	for i, subj := range r.Subjects {
		r.Subjects[i] = core.CleanString(subj)
	}
	r.PathType = core.CleanString(r.PathType, true /* lower */)
	return validate.Struct(r)
}

func (api *learnPathApi) layout(ctx echo.Context) error {
	var data LayoutRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LayoutRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	courses, err := api.svc.Query(ctx.Request().Context(), data.Subjects)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	completed := make(map[string]bool, len(data.CompletedCourses))
	for _, id := range data.CompletedCourses {
		completed[id] = true
	}

	layout := learnpath.BuildLayout(
		courses, data.PathConfig,
		data.ContainerWidth, data.ContainerHeight,
		data.Progress, completed,
	)
	return ctx.JSON(http.StatusOK, layout)
}

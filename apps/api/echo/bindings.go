package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	fromParam = "from"
	toParam   = "to"

	dateFormat = "2006-01-02"
)

// DateRange binds optional "from"/"to" query params; zero bounds are open-ended.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (rng *DateRange) Bind(ctx echo.Context) error {
	parse := func(param string, dest *time.Time) error {
		val := ctx.QueryParam(param)
		if val == "" {
			return nil
		}
		t, err := time.Parse(dateFormat, val)
		if err != nil {
			return core.NewValidationError(
				errors.Errorf("invalid date %q", val),
				core.FieldError{Field: param, Error: "must be a date in YYYY-MM-DD format"},
			)
		}
		*dest = t
		return nil
	}

	if err := parse(fromParam, &rng.From); err != nil {
		return err
	}
	return parse(toParam, &rng.To)
}

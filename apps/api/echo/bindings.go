package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/calendar"
)

var (
	yearParam  = "year"
	monthParam = "month"
	modeParam  = "mode"
	dueParam   = "due"
)

// MonthQuery is bound from `?year=2024&month=3&mode=attendance`; year and month default to today's.
type MonthQuery struct {
	Year  int
	Month time.Month
	Mode  calendar.Mode
}

func (q *MonthQuery) Bind(ctx echo.Context) error {
	today, _ := core.Today().Time()
	q.Year, q.Month = today.Year(), today.Month()
	q.Mode = calendar.Mode(ctx.QueryParam(modeParam))

	if val := ctx.QueryParam(yearParam); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return core.NewArgumentError("invalid year %q", val)
		}
		q.Year = year
	}
	if val := ctx.QueryParam(monthParam); val != "" {
		month, err := strconv.Atoi(val)
		if err != nil {
			return core.NewArgumentError("invalid month %q", val)
		}
		q.Month = time.Month(month)
	}
	return nil
}

// dueQuery returns the `?due=` date filter, if any.
func dueQuery(ctx echo.Context) (core.DateKey, bool, error) {
	val := ctx.QueryParam(dueParam)
	if val == "" {
		return "", false, nil
	}
	date, err := core.ParseDateKey(val)
	if err != nil {
		return "", false, core.NewArgumentError("invalid due date %q", val)
	}
	return date, true, nil
}

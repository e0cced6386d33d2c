package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/classbook/core"
)

const ctxDateKey = "date"

// dateMiddleware parses the `:date` path param and stores it in the context.
func dateMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			val := ctx.Param("date")
			date, err := core.ParseDateKey(val)
			if err != nil {
				return core.NewArgumentError("invalid date %q: expected YYYY-MM-DD", val)
			}
			ctx.Set(ctxDateKey, date)
			return next(ctx)
		}
	}
}

func contextDate(ctx echo.Context) core.DateKey {
	date, _ := ctx.Get(ctxDateKey).(core.DateKey)
	return date
}

package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core/attendance"
	"github.com/trezcool/classbook/core/classroom"
)

type attendanceApi struct {
	class *classroom.Classroom
}

func registerAttendanceAPI(g *echo.Group, deps ServerDeps) {
	api := attendanceApi{class: deps.Classroom}

	g.GET("/moods", api.moods)

	dg := g.Group("/attendance/:date", dateMiddleware())
	dg.GET("", api.day)
	dg.POST("/mark-all", api.markAllPresent)
	dg.POST("/:studentId/toggle", api.toggle)
	dg.PUT("/:studentId/mood", api.setMood)
	dg.PUT("/:studentId/memo", api.setMemo)
}

type MoodRequest struct {
	Mood attendance.Mood `json:"mood"`
}

// Handlers

func (api *attendanceApi) moods(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, attendance.Moods)
}

// day returns every current student's record, absent ones materialized with the default.
func (api *attendanceApi) day(ctx echo.Context) error {
	date := contextDate(ctx)
	out := make(map[string]attendance.Record)
	for _, st := range api.class.Roster.List() {
		rec, _ := api.class.Attendance.Get(date, st.ID)
		out[st.ID] = rec
	}
	return ctx.JSON(http.StatusOK, out)
}

func (api *attendanceApi) markAllPresent(ctx echo.Context) error {
	api.class.MarkAllPresent(contextDate(ctx))
	return ctx.NoContent(http.StatusNoContent)
}

func (api *attendanceApi) toggle(ctx echo.Context) error {
	rec := api.class.Attendance.TogglePresence(contextDate(ctx), ctx.Param("studentId"))
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) setMood(ctx echo.Context) error {
	var data MoodRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MoodRequest")
	}
	rec, err := api.class.Attendance.SetMood(contextDate(ctx), ctx.Param("studentId"), data.Mood)
	if err != nil {
		return errors.Wrap(err, "setting mood")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) setMemo(ctx echo.Context) error {
	var data MemoRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MemoRequest")
	}
	rec := api.class.Attendance.SetMemo(contextDate(ctx), ctx.Param("studentId"), data.Memo)
	return ctx.JSON(http.StatusOK, rec)
}

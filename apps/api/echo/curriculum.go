package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core/classroom"
	"github.com/trezcool/classbook/core/curriculum"
	"github.com/trezcool/classbook/core/progress"
)

type curriculumApi struct {
	class *classroom.Classroom
}

func registerCurriculumAPI(g *echo.Group, deps ServerDeps) {
	api := curriculumApi{class: deps.Classroom}

	sg := g.Group("/subjects")
	sg.GET("", api.querySubjects)
	sg.POST("", api.createSubject)
	sg.PUT("/:id", api.updateSubject)

	ag := g.Group("/assignments")
	ag.GET("", api.queryAssignments)
	ag.POST("", api.createAssignment)
	ag.PUT("/:id", api.updateAssignment)

	// status & memo are always recorded under the assignment's due date
	ag.GET("/:id/status", api.assignmentStatus)
	ag.PUT("/:id/status/:studentId", api.setStatus)
	ag.PUT("/:id/memo/:studentId", api.setMemo)
	ag.POST("/:id/done", api.bulkSetDone)
}

type (
	LevelRequest struct {
		Level progress.Level `json:"level"`
	}

	StudentStatus struct {
		StudentID string         `json:"studentId"`
		Level     progress.Level `json:"level"`
		Memo      string         `json:"memo"`
	}
)

// Handlers

func (api *curriculumApi) querySubjects(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.class.Curriculum.Subjects())
}

func (api *curriculumApi) createSubject(ctx echo.Context) error {
	var data curriculum.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	sub, err := api.class.Curriculum.AddSubject(data)
	if err != nil {
		return errors.Wrap(err, "adding subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *curriculumApi) updateSubject(ctx echo.Context) error {
	var data curriculum.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	sub, err := api.class.Curriculum.UpdateSubject(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *curriculumApi) queryAssignments(ctx echo.Context) error {
	due, ok, err := dueQuery(ctx)
	if err != nil {
		return err
	}
	if ok {
		return ctx.JSON(http.StatusOK, api.class.Curriculum.AssignmentsDue(due))
	}
	return ctx.JSON(http.StatusOK, api.class.Curriculum.Assignments())
}

func (api *curriculumApi) createAssignment(ctx echo.Context) error {
	var data curriculum.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	a, err := api.class.Curriculum.AddAssignment(data)
	if err != nil {
		return errors.Wrap(err, "adding assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *curriculumApi) updateAssignment(ctx echo.Context) error {
	var data curriculum.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	a, err := api.class.Curriculum.UpdateAssignment(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

// assignmentStatus lists every current student's status on the assignment, in roster order.
func (api *curriculumApi) assignmentStatus(ctx echo.Context) error {
	a, ok := api.class.Curriculum.Assignment(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	students := api.class.Roster.List()
	out := make([]StudentStatus, 0, len(students))
	for _, st := range students {
		e, _ := api.class.Progress.Get(a.DueDate, st.ID, a.ID)
		out = append(out, StudentStatus{StudentID: st.ID, Level: e.Level, Memo: e.Memo})
	}
	return ctx.JSON(http.StatusOK, out)
}

func (api *curriculumApi) setStatus(ctx echo.Context) error {
	var data LevelRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LevelRequest")
	}
	e, err := api.class.SetAssignmentStatus(ctx.Param("studentId"), ctx.Param("id"), data.Level)
	if err != nil {
		return errors.Wrap(err, "setting assignment status")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *curriculumApi) setMemo(ctx echo.Context) error {
	var data MemoRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MemoRequest")
	}
	e, err := api.class.SetAssignmentMemo(ctx.Param("studentId"), ctx.Param("id"), data.Memo)
	if err != nil {
		return errors.Wrap(err, "setting assignment memo")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *curriculumApi) bulkSetDone(ctx echo.Context) error {
	if err := api.class.BulkSetDone(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "marking assignment done")
	}
	return ctx.NoContent(http.StatusNoContent)
}

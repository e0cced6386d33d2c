package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core/roster"
)

type rosterApi struct {
	store *roster.Store
}

func registerRosterAPI(g *echo.Group, deps ServerDeps) {
	api := rosterApi{store: deps.Classroom.Roster}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/next-number", api.nextNumber)

	// detail endpoints
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.PUT("/:id/memo", api.updateMemo)
}

type (
	// NextNumberResponse pre-fills the add form. In continuous mode it follows the number just saved.
	NextNumberResponse struct {
		Number string `json:"num"`
	}

	MemoRequest struct {
		Memo string `json:"memo"`
	}
)

// Handlers

func (api *rosterApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.List())
}

func (api *rosterApi) create(ctx echo.Context) error {
	var data roster.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	st, err := api.store.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *rosterApi) nextNumber(ctx echo.Context) error {
	// ?after=<number> for continuous add
	if after := ctx.QueryParam("after"); after != "" {
		if next, ok := roster.NextNumber(after); ok {
			return ctx.JSON(http.StatusOK, NextNumberResponse{Number: next})
		}
	}
	return ctx.JSON(http.StatusOK, NextNumberResponse{Number: api.store.SuggestNumber()})
}

func (api *rosterApi) retrieve(ctx echo.Context) error {
	st, ok := api.store.Get(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *rosterApi) update(ctx echo.Context) error {
	var data roster.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	st, err := api.store.Update(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *rosterApi) updateMemo(ctx echo.Context) error {
	var data MemoRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MemoRequest")
	}
	st, err := api.store.UpdateMemo(ctx.Param("id"), data.Memo)
	if err != nil {
		return errors.Wrap(err, "updating student memo")
	}
	return ctx.JSON(http.StatusOK, st)
}

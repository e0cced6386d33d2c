package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core/counseling"
)

type counselingApi struct {
	store *counseling.Store
}

func registerCounselingAPI(g *echo.Group, deps ServerDeps) {
	api := counselingApi{store: deps.Classroom.Counseling}

	dg := g.Group("/counseling/:date", dateMiddleware())
	dg.GET("", api.query)
	dg.POST("", api.create)
	dg.PATCH("/:id", api.updateField)
}

// FieldRequest patches a single field; `resolved` takes "true" or "false".
type FieldRequest struct {
	Field counseling.Field `json:"field"`
	Value string           `json:"value"`
}

// Handlers

func (api *counselingApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Records(contextDate(ctx)))
}

func (api *counselingApi) create(ctx echo.Context) error {
	return ctx.JSON(http.StatusCreated, api.store.AddRecord(contextDate(ctx)))
}

func (api *counselingApi) updateField(ctx echo.Context) error {
	var data FieldRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FieldRequest")
	}
	rec, err := api.store.UpdateField(contextDate(ctx), ctx.Param("id"), data.Field, data.Value)
	if err != nil {
		return errors.Wrap(err, "updating counseling record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

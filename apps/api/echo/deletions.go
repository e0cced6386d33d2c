package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core/classroom"
)

type deletionApi struct {
	class *classroom.Classroom
}

// registerDeletionAPI exposes the two-phase deletion: request a confirmation, then commit its token.
func registerDeletionAPI(g *echo.Group, deps ServerDeps) {
	api := deletionApi{class: deps.Classroom}

	dg := g.Group("/deletions")
	dg.POST("", api.request)
	dg.POST("/:token", api.commit)
}

type DeletionRequest struct {
	Kind classroom.DeletionKind `json:"kind"`
	ID   string                 `json:"id"`
}

// Handlers

func (api *deletionApi) request(ctx echo.Context) error {
	var data DeletionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeletionRequest")
	}
	conf, err := api.class.RequestDeletion(data.Kind, data.ID)
	if err != nil {
		return errors.Wrap(err, "requesting deletion")
	}
	return ctx.JSON(http.StatusCreated, conf)
}

func (api *deletionApi) commit(ctx echo.Context) error {
	if err := api.class.CommitDeletion(ctx.Param("token")); err != nil {
		return errors.Wrap(err, "committing deletion")
	}
	return ctx.NoContent(http.StatusNoContent)
}

package echoapi

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/calendar"
	"github.com/trezcool/classbook/core/classroom"
	"github.com/trezcool/classbook/core/report"
)

// slotVersions counts changes per slot so the UI knows which derived views to recompute.
type slotVersions struct {
	mu       sync.RWMutex
	versions map[core.Slot]int
}

func newSlotVersions() *slotVersions {
	v := &slotVersions{versions: make(map[core.Slot]int, len(core.AllSlots))}
	for _, slot := range core.AllSlots {
		v.versions[slot] = 0
	}
	return v
}

func (v *slotVersions) bump(slot core.Slot) {
	v.mu.Lock()
	v.versions[slot]++
	v.mu.Unlock()
}

func (v *slotVersions) snapshot() map[core.Slot]int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make(map[core.Slot]int, len(v.versions))
	for k, n := range v.versions {
		out[k] = n
	}
	return out
}

// responseDownloader hands a download over to the HTTP client as an attachment.
type responseDownloader struct {
	ctx echo.Context
}

var _ core.Downloader = (*responseDownloader)(nil)

func (d responseDownloader) TriggerDownload(filename, mimeType string, content []byte) error {
	d.ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return d.ctx.Blob(http.StatusOK, mimeType, content)
}

type viewsApi struct {
	class    *classroom.Classroom
	versions *slotVersions
}

func registerViewsAPI(g *echo.Group, deps ServerDeps, versions *slotVersions) {
	api := viewsApi{class: deps.Classroom, versions: versions}

	g.GET("/versions", api.slotVersions)
	g.GET("/calendar", api.month)
	g.GET("/calendar/:date", api.dot, dateMiddleware())
	g.GET("/report", api.report)
	g.GET("/report.csv", api.download(report.FormatCSV))
	g.GET("/report.xlsx", api.download(report.FormatXLSX))
}

type DotResponse struct {
	Date  core.DateKey   `json:"date"`
	Mode  calendar.Mode  `json:"mode"`
	Color calendar.Color `json:"color"`
}

// Handlers

func (api *viewsApi) slotVersions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.versions.snapshot())
}

func (api *viewsApi) dot(ctx echo.Context) error {
	date := contextDate(ctx)
	mode := calendar.Mode(ctx.QueryParam(modeParam))
	color, err := api.class.Dot(date, mode)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, DotResponse{Date: date, Mode: mode, Color: color})
}

func (api *viewsApi) month(ctx echo.Context) error {
	var q MonthQuery
	if err := q.Bind(ctx); err != nil {
		return err
	}
	days, err := api.class.Month(q.Year, q.Month, q.Mode)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, days)
}

func (api *viewsApi) report(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.class.Report())
}

func (api *viewsApi) download(format report.Format) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, err := api.class.DownloadReport(responseDownloader{ctx}, format); err != nil {
			return errors.Wrap(err, "downloading report")
		}
		return nil
	}
}

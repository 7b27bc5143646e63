package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/crossmarket/crossmarket/internal/domain/models"
	"github.com/crossmarket/crossmarket/internal/repository"
	"github.com/crossmarket/crossmarket/internal/usecase"
	xhttp "github.com/crossmarket/crossmarket/pkg/http"
	xlogger "github.com/crossmarket/crossmarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Pinger reports store connectivity.
type Pinger interface {
	Health(ctx context.Context) error
}

// DashboardHandler serves the three dashboard views over JSON.
type DashboardHandler struct {
	logger   *xlogger.Logger
	overview *usecase.Overview
	catalog  *usecase.Catalog
	coins    *usecase.TopCoins
	store    Pinger
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	overview *usecase.Overview,
	catalog *usecase.Catalog,
	coins *usecase.TopCoins,
	store Pinger,
) *DashboardHandler {
	return &DashboardHandler{
		logger:   logger,
		overview: overview,
		catalog:  catalog,
		coins:    coins,
		store:    store,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/overview", h.Overview)
	g.GET("/overview/range", h.OverviewRange)
	g.GET("/catalog", h.Catalog)
	g.GET("/catalog/run", h.CatalogRun)
	g.GET("/coins/top", h.TopCoins)
	g.GET("/coins/:id/series", h.CoinSeries)
}

func (h *DashboardHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		return xhttp.ServiceUnavailableResponse(c, map[string]string{"store": err.Error()})
	}
	return xhttp.SuccessResponse(c, map[string]string{"store": "ok"})
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	req := &models.OverviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.overview.Compute(c.Request().Context(), req.Start, req.End)
	if err != nil {
		return h.viewError(c, "overview", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) OverviewRange(c echo.Context) error {
	min, max, sources, err := h.overview.Range(c.Request().Context())
	if err != nil {
		return h.viewError(c, "overview range", err)
	}
	return xhttp.SuccessResponse(c, map[string]any{
		"min":     min,
		"max":     max,
		"sources": sources,
	})
}

func (h *DashboardHandler) Catalog(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.catalog.Categories())
}

func (h *DashboardHandler) CatalogRun(c echo.Context) error {
	req := &models.CatalogRunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.catalog.Run(c.Request().Context(), req.ID)
	if err != nil {
		return h.viewError(c, "catalog run", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) TopCoins(c echo.Context) error {
	req := &models.TopCoinsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	coins, err := h.coins.Top(c.Request().Context(), req.N)
	if err != nil {
		return h.viewError(c, "top coins", err)
	}
	return xhttp.SuccessResponse(c, coins)
}

func (h *DashboardHandler) CoinSeries(c echo.Context) error {
	req := &models.CoinSeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	detail, err := h.coins.Detail(c.Request().Context(), c.Param("id"), req.Start, req.End)
	if err != nil {
		return h.viewError(c, "coin series", err)
	}
	return xhttp.SuccessResponse(c, detail)
}

// viewError maps the error taxonomy onto responses: invalid input is a 400,
// an empty result is a successful no-data payload with diagnostics, a failed
// catalog query is a local 400, and store connectivity is a 503 for this
// request, never retried.
func (h *DashboardHandler) viewError(c echo.Context, view string, err error) error {
	var noData *usecase.NoDataError
	if errors.As(err, &noData) {
		return xhttp.SuccessResponse(c, map[string]any{
			"no_data":     true,
			"diagnostics": noData.Diagnostics,
		})
	}

	if errors.Is(err, usecase.ErrInvalidRange) {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_RANGE",
			Message: err.Error(),
		}})
	}

	if errors.Is(err, usecase.ErrUnknownQuery) {
		return xhttp.NotFoundResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_UNKNOWN_QUERY",
			Message: err.Error(),
		}})
	}

	var qerr *usecase.QueryError
	if errors.As(err, &qerr) {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_QUERY_FAILED",
			Message: qerr.Error(),
		}})
	}

	h.logger.Error(view+" failed", xlogger.Error(err))

	if errors.Is(err, repository.ErrStoreUnavailable) {
		return xhttp.ServiceUnavailableResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_STORE",
			Message: "market database is unavailable",
		}})
	}

	return xhttp.AppErrorResponse(c, xhttp.WrapAppError(
		"ERR_INTERNAL", "internal error", http.StatusInternalServerError, err))
}

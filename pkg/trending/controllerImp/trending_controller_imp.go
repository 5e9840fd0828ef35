package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"olivia/pkg/logging"
	"olivia/pkg/trending/controller"
	"olivia/pkg/trending/service"
)

const degradedHeader = "X-Trending-Degraded"

type TrendingCtrl struct{ svc service.TrendingService }

func New(svc service.TrendingService) *TrendingCtrl { return &TrendingCtrl{svc: svc} }

var _ controller.TrendingController = (*TrendingCtrl)(nil)

func (h *TrendingCtrl) Trending(c echo.Context) error {
	res, err := h.svc.Aggregate(c.Request().Context())
	if err != nil {
		logging.Error().Err(err).Msg("trending")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if res.Degraded() {
		c.Response().Header().Set(degradedHeader, strconv.FormatBool(true))
	}
	return c.JSON(http.StatusOK, res)
}

type eventReq struct {
	ActionType string `json:"action_type" validate:"required,oneof=tried liked shared seasonal-suggestion seasonal-cache"`
}

// RecordEvent appends a usage event for the caller on outfit :id.
func (h *TrendingCtrl) RecordEvent(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ev, err := h.svc.Record(c.Request().Context(), uid, c.Param("id"), req.ActionType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, ev)
}

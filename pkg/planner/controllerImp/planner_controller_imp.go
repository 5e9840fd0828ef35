package controllerImp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"olivia/entities"
	"olivia/pkg/logging"
	"olivia/pkg/planner/controller"
	"olivia/pkg/planner/service"
	"olivia/pkg/planner/types"
)

type PlannerCtrl struct{ svc service.PlannerService }

func New(svc service.PlannerService) *PlannerCtrl { return &PlannerCtrl{svc: svc} }

var _ controller.PlannerController = (*PlannerCtrl)(nil)

type weeklyReq struct {
	City    string `json:"city" validate:"max=120"`
	Country string `json:"country" validate:"max=120"`
}

// Weekly returns seven unsaved drafts starting today.
func (h *PlannerCtrl) Weekly(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req weeklyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	loc := types.Location{City: strings.TrimSpace(req.City), Country: strings.TrimSpace(req.Country)}

	days, err := h.svc.GenerateWeekly(c.Request().Context(), uid, loc)
	if errors.Is(err, service.ErrEmptyWardrobe) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	if err != nil {
		logging.Error().Err(err).Str("uid", uid).Msg("weekly plan")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"days": days})
}

type saveReq struct {
	Outfits []entities.Outfit `json:"outfits" validate:"required,min=1,max=7"`
}

// SaveWeekly persists drafts one by one; failed days come back with a null id.
func (h *PlannerCtrl) SaveWeekly(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req saveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	for _, o := range req.Outfits {
		if len(o.Items) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "outfit has no items"})
		}
	}
	results := h.svc.SaveWeek(c.Request().Context(), uid, req.Outfits)
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

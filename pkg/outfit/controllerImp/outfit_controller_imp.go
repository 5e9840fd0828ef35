package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"olivia/entities"
	"olivia/pkg/logging"
	"olivia/pkg/outfit/controller"
	"olivia/pkg/outfit/repository"
	"olivia/pkg/planner/types"
)

// eventRecorder is the slice of the trending service this controller needs.
type eventRecorder interface {
	Record(ctx context.Context, uid, outfitID, actionType string) (*entities.OutfitUsageEvent, error)
}

type OutfitCtrl struct {
	repo   repository.OutfitRepository
	events eventRecorder
	now    func() time.Time
}

func New(repo repository.OutfitRepository, events eventRecorder, now func() time.Time) *OutfitCtrl {
	if now == nil {
		now = time.Now
	}
	return &OutfitCtrl{repo: repo, events: events, now: now}
}

var _ controller.OutfitController = (*OutfitCtrl)(nil)

type createReq struct {
	Name            string   `json:"name" validate:"required,max=120"`
	Items           []string `json:"items" validate:"required,min=1,max=12"`
	Occasions       []string `json:"occasions"`
	Season          []string `json:"season"`
	PersonalityTags []string `json:"personality_tags"`
	Colors          []string `json:"colors"`
}

func (h *OutfitCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	o := &entities.Outfit{
		ID:              uuid.NewString(),
		UserID:          uid,
		Name:            req.Name,
		Items:           uniq(req.Items),
		Occasions:       req.Occasions,
		Season:          req.Season,
		PersonalityTags: req.PersonalityTags,
		Colors:          req.Colors,
		DateAdded:       h.now().UTC(),
	}
	if err := h.repo.Create(c.Request().Context(), o); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OutfitCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.repo.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if out == nil {
		out = []entities.Outfit{}
	}
	return c.JSON(http.StatusOK, out)
}

type patchReq struct {
	Favorite *bool `json:"favorite"`
	Worn     bool  `json:"worn"`
}

// Patch toggles favorite and/or logs one wear.
func (h *OutfitCtrl) Patch(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")
	var req patchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Favorite == nil && !req.Worn {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "nothing to update"})
	}
	ctx := c.Request().Context()
	if req.Favorite != nil {
		if err := h.repo.SetFavorite(ctx, id, uid, *req.Favorite); err != nil {
			return notFoundOr500(c, err)
		}
	}
	if req.Worn {
		if err := h.repo.IncrementWorn(ctx, id, uid); err != nil {
			return notFoundOr500(c, err)
		}
	}
	o, err := h.repo.FindByID(ctx, id, uid)
	if err != nil {
		return notFoundOr500(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Seasonal lists outfits tagged for the current season (or "all") and logs a
// seasonal-suggestion event for each one shown.
func (h *OutfitCtrl) Seasonal(c echo.Context) error {
	uid := c.Get("uid").(string)
	ctx := c.Request().Context()
	season := types.SeasonFor(h.now())

	all, err := h.repo.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	out := []entities.Outfit{}
	for _, o := range all {
		if slices.Contains(o.Season, season) || slices.Contains(o.Season, "all") {
			out = append(out, o)
		}
	}
	for _, o := range out {
		if _, err := h.events.Record(ctx, uid, o.ID, entities.ActionSeasonalSuggestion); err != nil {
			logging.Warn().Err(err).Str("outfit_id", o.ID).Msg("record seasonal suggestion")
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"season": season, "outfits": out})
}

func notFoundOr500(c echo.Context, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func uniq(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

package controllerImp

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"olivia/entities"
	"olivia/pkg/logging"
	"olivia/pkg/wardrobe/controller"
	"olivia/pkg/wardrobe/service"
)

type WardrobeCtrl struct{ svc service.WardrobeService }

func New(svc service.WardrobeService) *WardrobeCtrl { return &WardrobeCtrl{svc: svc} }

var _ controller.WardrobeController = (*WardrobeCtrl)(nil)

type createReq struct {
	Name      string   `json:"name" validate:"required,max=120"`
	Type      string   `json:"type" validate:"required,max=60"`
	Color     string   `json:"color" validate:"max=40"`
	Material  string   `json:"material" validate:"max=60"`
	Season    []string `json:"season"`
	Occasions []string `json:"occasions"`
	LastWorn  string   `json:"last_worn"` // YYYY-MM-DD
	TimesWorn int      `json:"times_worn" validate:"min=0"`
	ImageURL  string   `json:"image_url" validate:"omitempty,url"`
}

func (h *WardrobeCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	it := &entities.ClothingItem{
		UserID: uid, Name: req.Name, Type: req.Type, Color: req.Color, Material: req.Material,
		Season: req.Season, Occasions: req.Occasions, TimesWorn: req.TimesWorn, ImageURL: req.ImageURL,
	}
	if req.LastWorn != "" {
		if d, err := time.Parse("2006-01-02", req.LastWorn); err == nil {
			it.LastWorn = &d
		}
	}
	out, err := h.svc.Add(c.Request().Context(), it)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *WardrobeCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.svc.List(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if out == nil {
		out = []entities.ClothingItem{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WardrobeCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	it, err := h.svc.Get(c.Request().Context(), c.Param("id"), uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, it)
}

type importReq struct {
	URL  string `json:"url" validate:"required,http_url"`
	Type string `json:"type" validate:"max=60"`
}

// Import turns a product page into a wardrobe item.
func (h *WardrobeCtrl) Import(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req importReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	it, err := h.svc.ImportFromURL(c.Request().Context(), uid, service.Import{URL: req.URL, Type: req.Type})
	switch {
	case errors.Is(err, service.ErrDomainNotAllowed):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrUnsupportedPage):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case err != nil:
		logging.Warn().Err(err).Str("url", req.URL).Msg("wardrobe import")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, it)
}

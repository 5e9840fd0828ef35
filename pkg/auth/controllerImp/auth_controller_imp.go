package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"olivia/pkg/auth/controller"
	chatRepo "olivia/pkg/chat/repository"
	"olivia/pkg/logging"
	"olivia/pkg/middleware"
)

const tokenTTL = 24 * time.Hour

type authCtrl struct {
	secret string
	usage  chatRepo.ChatUsageRepository
	now    func() time.Time
}

func NewAuthController(secret string, usage chatRepo.ChatUsageRepository, now func() time.Time) controller.AuthController {
	if now == nil {
		now = time.Now
	}
	return &authCtrl{secret: secret, usage: usage, now: now}
}

// DevLogin runs behind middleware.DevLogin and, when a JWT secret is set,
// also hands back a bearer token for the resolved identity. ?uid= switches
// identity even when a cookie exists; ?premium=1|0 flips the premium flag.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if q := c.QueryParam("uid"); q != "" && q != uid {
		uid = q
		c.SetCookie(&http.Cookie{Name: middleware.DevCookie, Value: uid, Path: "/", HttpOnly: true})
	}
	ctx := c.Request().Context()

	if p := c.QueryParam("premium"); p != "" {
		if err := h.usage.SetPremium(ctx, uid, p == "1" || p == "true"); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	premium, _ := h.usage.IsPremium(ctx, uid)

	resp := map[string]any{"uid": uid, "premium": premium}
	if h.secret != "" {
		tok, err := middleware.IssueToken(h.secret, uid, tokenTTL, h.now())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		resp["token"] = tok
	}
	logging.Info().Str("uid", uid).Bool("premium", premium).Msg("dev login")
	return c.JSON(http.StatusOK, resp)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	premium, err := h.usage.IsPremium(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"uid": uid, "premium": premium})
}

package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"olivia/pkg/logging"
	"olivia/pkg/metrics"
	"olivia/pkg/middleware"
)

type Handlers struct {
	Auth     interface{ DevLogin(echo.Context) error; WhoAmI(echo.Context) error }
	Health   interface{ Health(echo.Context) error }
	Trending interface{ Trending(echo.Context) error; RecordEvent(echo.Context) error }
	Wardrobe interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Import(echo.Context) error
	}
	Outfit interface {
		Create(echo.Context) error
		List(echo.Context) error
		Patch(echo.Context) error
		Seasonal(echo.Context) error
	}
	Planner interface{ Weekly(echo.Context) error; SaveWeekly(echo.Context) error }
	Chat    interface{ Send(echo.Context) error }
}

type Options struct {
	JWTSecret      string
	EnableDevLogin bool
	CORSOrigins    []string
}

func New(e *echo.Echo, h Handlers, opt Options) *echo.Echo {
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(logging.RequestLogger())
	e.Use(middleware.CORS(opt.CORSOrigins))

	e.GET("/health", h.Health.Health)
	e.GET("/metrics", metrics.Handler())
	e.Any("/trending-outfits", h.Trending.Trending)
	if opt.EnableDevLogin {
		e.GET("/devlogin", h.Auth.DevLogin, middleware.DevLogin())
	}

	// not a Group: Group.Use also registers catch-all routes behind auth
	auth := middleware.Auth(opt.JWTSecret, opt.EnableDevLogin)
	api := func(method, path string, fn echo.HandlerFunc) { e.Add(method, path, fn, auth) }

	api(http.MethodGet, "/whoami", h.Auth.WhoAmI)

	api(http.MethodPost, "/wardrobe/items", h.Wardrobe.Create)
	api(http.MethodGet, "/wardrobe/items", h.Wardrobe.List)
	api(http.MethodGet, "/wardrobe/items/:id", h.Wardrobe.Get)
	api(http.MethodPost, "/wardrobe/import", h.Wardrobe.Import)

	api(http.MethodPost, "/outfits", h.Outfit.Create)
	api(http.MethodGet, "/outfits", h.Outfit.List)
	api(http.MethodGet, "/outfits/seasonal", h.Outfit.Seasonal)
	api(http.MethodPatch, "/outfits/:id", h.Outfit.Patch)
	api(http.MethodPost, "/outfits/:id/events", h.Trending.RecordEvent)

	api(http.MethodPost, "/planner/weekly", h.Planner.Weekly)
	api(http.MethodPost, "/planner/weekly/save", h.Planner.SaveWeekly)

	api(http.MethodPost, "/chat", h.Chat.Send)
	return e
}

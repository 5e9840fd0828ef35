package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	corsMethods = "GET, POST, PATCH, OPTIONS"
	corsHeaders = "Authorization, Content-Type, X-Client-Info, Apikey"
)

// CORS stamps the allow headers on every response and answers preflight
// requests itself with 204. origins may contain "*".
func CORS(origins []string) echo.MiddlewareFunc {
	wildcard := len(origins) == 0
	allowed := map[string]bool{}
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			switch {
			case wildcard:
				h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			case origin != "" && allowed[origin]:
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
				h.Add(echo.HeaderVary, echo.HeaderOrigin)
			}
			h.Set(echo.HeaderAccessControlAllowMethods, corsMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, corsHeaders)
			h.Set(echo.HeaderAccessControlExposeHeaders, "X-Trending-Degraded")

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}

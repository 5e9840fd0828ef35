package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	DevCookie  = "OLIVIA_UID"
	DefaultUID = "U_DEV_DEFAULT"
)

// DevUID resolves a development identity from the cookie, then ?uid=, then
// DefaultUID. The cookie is (re)set whenever it was missing.
func DevUID(c echo.Context) string {
	if ck, err := c.Cookie(DevCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = DefaultUID
	}
	c.SetCookie(&http.Cookie{Name: DevCookie, Value: uid, Path: "/", HttpOnly: true})
	return uid
}

// DevLogin trusts DevUID unconditionally. Local use only.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", DevUID(c))
			return next(c)
		}
	}
}

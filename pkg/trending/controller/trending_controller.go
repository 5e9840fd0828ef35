package controller

import "github.com/labstack/echo/v4"

type TrendingController interface {
	Trending(c echo.Context) error
	RecordEvent(c echo.Context) error
}

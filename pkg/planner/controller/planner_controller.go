package controller

import "github.com/labstack/echo/v4"

type PlannerController interface {
	Weekly(c echo.Context) error
	SaveWeekly(c echo.Context) error
}

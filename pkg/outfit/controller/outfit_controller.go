package controller

import "github.com/labstack/echo/v4"

type OutfitController interface {
	Create(c echo.Context) error
	List(c echo.Context) error
	Patch(c echo.Context) error
	Seasonal(c echo.Context) error
}

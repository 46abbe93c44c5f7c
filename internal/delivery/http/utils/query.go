package utils

import "github.com/labstack/echo/v4"

// ReadQuery заполняет v из query-параметров по тегам `query`
func ReadQuery(c echo.Context, v any) error {
	binder := &echo.DefaultBinder{}
	return binder.BindQueryParams(c, v)
}

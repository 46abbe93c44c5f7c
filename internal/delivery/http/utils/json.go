package utils

import (
	"encoding/json"
	"errors"

	"github.com/labstack/echo/v4"
)

// ReadJSON читает тело запроса как один JSON-объект
func ReadJSON(c echo.Context, v any) error {
	decoder := json.NewDecoder(c.Request().Body)
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

package handler

import "github.com/labstack/echo/v4"

// successEnvelope wraps every successful API payload.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, successEnvelope{Success: true, Data: data})
}

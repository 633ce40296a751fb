package handler

import (
	"lotadmin/internal/registry/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := c.Request().Header.Get(echo.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, reqID)

		req := c.Request()
		c.SetRequest(req.WithContext(service.WithRequestID(req.Context(), reqID)))
		return next(c)
	}
}

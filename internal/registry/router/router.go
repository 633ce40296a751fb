package router

import (
	"lotadmin/internal/registry/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterRoutes(e *echo.Echo, h *handler.RegistryHandler) {
	// The admin UI and other browser clients call the API cross-origin
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		ExposeHeaders: []string{echo.HeaderXRequestID, echo.HeaderContentDisposition},
	}))

	// Health Check
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	api.Use(handler.RequestIDMiddleware)

	// Customers
	api.GET("/customers", h.GetCustomers)
	api.GET("/customers/export", h.ExportCustomers)
	api.GET("/customers/:id", h.GetCustomer)
	api.POST("/customers", h.PostCustomer)
	api.PUT("/customers/:id", h.PutCustomer)
	api.DELETE("/customers/:id", h.DeleteCustomer)

	// Lots
	api.GET("/lots", h.GetLots)
	api.GET("/lots/export", h.ExportLots)
	api.GET("/lots/:id", h.GetLot)
	api.POST("/lots", h.PostLot)
	api.PUT("/lots/:id", h.PutLot)
	api.DELETE("/lots/:id", h.DeleteLot)

	// Change history
	api.GET("/history", h.GetHistory)
}

package server

import (
	"github.com/CesarLuchesi/phrasenets/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Analysis routes
	apiRoutes.POST("/analyze", routes.AnalyzeHandler)
	apiRoutes.GET("/analyses/:id/text", routes.GetAnalysisTextHandler)
}

package server

import (
	"github.com/labstack/echo/v4"

	"github.com/resumeguard/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", routes.HealthHandler)

	e.POST("/analyze", routes.AnalyzeHandler)
	e.POST("/corpus", routes.CorpusHandler)
}

package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/resumeguard/backend/internal/server/middleware"
)

// HealthHandler reports liveness and whether the similarity index is
// reachable.
func HealthHandler(c echo.Context) error {
	type healthResponse struct {
		Status string `json:"status"`
		Index  string `json:"index"`
	}

	app := c.(*middleware.AppContext).App
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := app.DBConn.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, healthResponse{
			Status: "degraded",
			Index:  "unreachable",
		})
	}
	return c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Index:  "ok",
	})
}

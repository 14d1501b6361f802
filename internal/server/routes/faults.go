package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resumeguard/backend/pkg/fault"
	"github.com/resumeguard/backend/pkg/logger"
)

type faultResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// writeFault maps a screening error onto the wire: bad client input is a
// 400, failing upstream dependencies are a 502, anything else a 500. The
// cause chain stays in the logs, not in the response.
func writeFault(c echo.Context, err error) error {
	var f *fault.Fault
	if !errors.As(err, &f) {
		logger.Error("[Server] Unclassified error", "err", err)
		return c.JSON(http.StatusInternalServerError, faultResponse{
			Kind:    "internal",
			Message: "Internal server error",
		})
	}

	status := http.StatusBadGateway
	if f.Kind.BadInput() {
		status = http.StatusBadRequest
	}
	logger.Error("[Server] Request failed", "kind", f.Kind, "err", err)
	return c.JSON(status, faultResponse{
		Kind:    string(f.Kind),
		Message: f.Message,
	})
}

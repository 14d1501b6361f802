package routes

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resumeguard/backend/internal/server/middleware"
	"github.com/resumeguard/backend/pkg/loader"
	"github.com/resumeguard/backend/pkg/logger"
)

// AnalyzeHandler screens one uploaded resume from multipart/form-data.
// The "file" part is required; "job_description" is an optional text
// field enabling the JD similarity signal.
func AnalyzeHandler(c echo.Context) error {
	type analyzeBody struct {
		JobDescription string `form:"job_description" validate:"omitempty,max=50000"`
	}

	type analyzeResponse struct {
		Message string `json:"message"`
	}

	data := new(analyzeBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid request body",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Missing resume file",
		})
	}
	jdText := data.JobDescription

	format, err := loader.DetectFormat(fileHeader.Filename)
	if err != nil {
		return writeFault(c, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid resume file",
		})
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		logger.Error("[Server] Failed to read upload", "file", fileHeader.Filename, "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}

	app := c.(*middleware.AppContext).App
	doc := loader.Document{
		Name:   fileHeader.Filename,
		Format: format,
		Data:   raw,
	}

	result, err := app.Screening.Analyze(c.Request().Context(), doc, jdText)
	if err != nil {
		return writeFault(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resumeguard/backend/internal/queue"
	"github.com/resumeguard/backend/internal/server/middleware"
	"github.com/resumeguard/backend/internal/storage"
	"github.com/resumeguard/backend/pkg/loader"
	"github.com/resumeguard/backend/pkg/logger"
)

// CorpusHandler accepts resumes for the plagiarism corpus. Files are
// parked in S3 and a message per file is published for the ingest
// worker; indexing happens asynchronously.
func CorpusHandler(c echo.Context) error {
	type corpusResponse struct {
		Message string   `json:"message"`
		Files   []string `json:"files,omitempty"`
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, corpusResponse{
			Message: "Invalid request body",
		})
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		return c.JSON(http.StatusBadRequest, corpusResponse{
			Message: "No files provided",
		})
	}

	// Reject unsupported formats before touching storage.
	for _, fileHeader := range uploads {
		if _, err := loader.DetectFormat(fileHeader.Filename); err != nil {
			return writeFault(c, err)
		}
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	accepted := make([]string, 0, len(uploads))
	for _, fileHeader := range uploads {
		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, corpusResponse{
				Message: "Invalid file " + fileHeader.Filename,
			})
		}

		key, err := storage.PutFile(ctx, app.S3, fileHeader.Filename, src)
		src.Close()
		if err != nil {
			logger.Error("[Server] Failed to store corpus file", "file", fileHeader.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, corpusResponse{
				Message: "Internal server error",
			})
		}

		msg, err := json.Marshal(queue.IngestMsg{
			Message:   "Index corpus resume",
			FileKey:   key,
			Namespace: app.Cfg.Screening.Namespace,
		})
		if err != nil {
			logger.Error("[Server] Failed to marshal ingest message", "file", fileHeader.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, corpusResponse{
				Message: "Internal server error",
			})
		}
		if err := queue.PublishFIFO(app.Queue, queue.IngestQueue, msg); err != nil {
			logger.Error("[Server] Failed to publish ingest message", "file", fileHeader.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, corpusResponse{
				Message: "Internal server error",
			})
		}
		accepted = append(accepted, fileHeader.Filename)
	}

	logger.Info("[Server] Corpus files accepted", "count", len(accepted))
	return c.JSON(http.StatusAccepted, corpusResponse{
		Message: "Accepted for indexing",
		Files:   accepted,
	})
}

package preview

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"docuchat-backend/config"
	"docuchat-backend/internal/services/ingest"
	"docuchat-backend/internal/services/process"
	"docuchat-backend/internal/textproc"
	"docuchat-backend/pkg/apperror"
	"docuchat-backend/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type previewRequest struct {
	Text string `json:"text"`
}

// HandlePreview cleans and chunks raw text with the configured strategy
// without persisting anything. Useful for tuning chunking parameters.
func HandlePreview(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req previewRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModulePreview, c, status.InvalidRequestBody, err.Error())
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperror.BadRequest(config.ModulePreview, c, status.MissingParams, "text is required")
	}

	processor := process.NewTextProcessor(textproc.NewCleaner(), ingest.NewChunkerFromConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := processor.GeneratePreview(ctx, req.Text)
	if err != nil {
		return apperror.InternalError(config.ModulePreview, c, err)
	}

	return apperror.Success(config.ModulePreview, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "preview generated",
		TrackingID: trackingID,
		Data:       result,
	})
}

package ingest

import (
	"context"
	"errors"
	"strconv"
	"time"

	"docuchat-backend/config"
	"docuchat-backend/internal/database"
	"docuchat-backend/internal/database/model"
	ingestsvc "docuchat-backend/internal/services/ingest"
	"docuchat-backend/pkg/apperror"
	"docuchat-backend/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type ingestResponse struct {
	DocID  int64  `json:"doc_id"`
	Status string `json:"status"`
}

// HandleIngest kicks off the ingestion pipeline for an uploaded document.
// The pipeline runs in the background; poll the document status for the
// outcome. Pass ?force=true to re-ingest a document that already has chunks.
func HandleIngest(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	docID, err := strconv.ParseInt(c.Params("docID"), 10, 64)
	if err != nil || docID <= 0 {
		return apperror.BadRequest(config.ModuleIngest, c, status.MissingParams, "invalid document id")
	}
	force := c.Query("force") == "true"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := database.GetEntityByID[model.Document](ctx, docID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(config.ModuleIngest, c, "document not found")
		}
		return apperror.InternalError(config.ModuleIngest, c, err)
	}

	go ingestsvc.RunIngestion(docID, force)

	return apperror.Success(config.ModuleIngest, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ingestion started",
		TrackingID: trackingID,
		Data:       ingestResponse{DocID: docID, Status: "processing"},
	})
}

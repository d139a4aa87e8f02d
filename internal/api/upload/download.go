package upload

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"docuchat-backend/config"
	"docuchat-backend/internal/database"
	"docuchat-backend/internal/database/model"
	"docuchat-backend/pkg/apperror"
	"docuchat-backend/pkg/apperror/status"
	s3client "docuchat-backend/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type downloadURLResponse struct {
	DocID     int64  `json:"doc_id"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// HandleDownloadURL returns a presigned GET URL for a document stored in
// object storage. Documents stored on local disk have no presignable URL.
func HandleDownloadURL(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	docID, err := strconv.ParseInt(c.Params("docID"), 10, 64)
	if err != nil || docID <= 0 {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "invalid document id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	doc, err := database.GetEntityByID[model.Document](ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(config.ModuleUpload, c, "document not found")
		}
		return apperror.InternalError(config.ModuleUpload, c, err)
	}
	if doc.FilePath == nil || !strings.HasPrefix(*doc.FilePath, "s3://") {
		return apperror.BadRequest(config.ModuleUpload, c, status.UnsupportedFormat, "document is not in object storage")
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(*doc.FilePath, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return apperror.InternalError(config.ModuleUpload, c, errors.New("malformed stored file path"))
	}

	presigner, err := s3client.GetPresignClient()
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}
	const expiry = 15 * time.Minute
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}

	return apperror.Success(config.ModuleUpload, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "download url generated",
		TrackingID: trackingID,
		Data: downloadURLResponse{
			DocID:     docID,
			URL:       req.URL,
			ExpiresIn: int(expiry.Seconds()),
		},
	})
}

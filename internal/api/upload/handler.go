package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
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
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gofiber/fiber/v3"
)

type uploadResponse struct {
	DocID int64 `json:"doc_id"`
}

// HandleUpload stores the multipart file in S3 (or on disk when no
// bucket is configured), records a document row and reports its ID.
// Ingestion is triggered separately.
func HandleUpload(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "file is required")
	}
	if fh == nil || fh.Size == 0 {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "empty file")
	}

	file, err := fh.Open()
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidRequestBody, "cannot open file")
	}
	defer file.Close()

	hasher := sha256.New()
	useS3 := strings.TrimSpace(config.Cfg.S3.Bucket) != ""

	var storedPath, shaHex string
	if useS3 {
		storedPath, shaHex, err = storeToS3(file, fh, hasher)
	} else {
		storedPath, shaHex, err = storeToLocal(file, fh, hasher)
	}
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}

	original := fh.Filename
	now := time.Now()
	doc := model.Document{
		OriginalFilename: &original,
		FilePath:         &storedPath,
		Sha256:           &shaHex,
		Status:           "uploaded",
		UploadedAt:       &now,
	}
	if err := database.CreateEntity(context.Background(), &doc); err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}

	return apperror.Success(config.ModuleUpload, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "file uploaded",
		TrackingID: trackingID,
		Data:       uploadResponse{DocID: doc.ID},
	})
}

func storeToLocal(r io.Reader, fh *multipart.FileHeader, hasher hash.Hash) (string, string, error) {
	baseDir := filepath.Join("storage", "documents")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create storage dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(baseDir, "upload-*.tmp")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
	}()

	mw := io.MultiWriter(tmpFile, hasher)
	if _, err := io.Copy(mw, r); err != nil {
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	shaHex := hex.EncodeToString(hasher.Sum(nil))
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".txt"
	}
	finalPath := filepath.Join(baseDir, shaHex+ext)
	if err := os.Rename(tmpFile.Name(), finalPath); err != nil {
		return "", "", fmt.Errorf("failed to finalize file: %w", err)
	}
	return finalPath, shaHex, nil
}

func storeToS3(r io.Reader, fh *multipart.FileHeader, hasher hash.Hash) (string, string, error) {
	client, err := s3client.GetClient()
	if err != nil {
		return "", "", fmt.Errorf("s3 client: %w", err)
	}

	ctx := context.Background()
	bucket := config.Cfg.S3.Bucket
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		if _, crtErr := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); crtErr != nil {
			var owned *s3types.BucketAlreadyOwnedByYou
			if !errors.As(crtErr, &owned) {
				return "", "", fmt.Errorf("create bucket: %w", crtErr)
			}
		}
	}

	// Hash while buffering to a temp file, then upload the buffered copy.
	tmp, err := os.CreateTemp("", "s3-upload-*.tmp")
	if err != nil {
		return "", "", fmt.Errorf("tempfile: %w", err)
	}
	defer func() {
		tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	mw := io.MultiWriter(tmp, hasher)
	if _, err := io.Copy(mw, r); err != nil {
		return "", "", fmt.Errorf("buffer upload: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("rewind: %w", err)
	}

	shaHex := hex.EncodeToString(hasher.Sum(nil))
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".txt"
	}
	key := fmt.Sprintf("documents/%s%s", shaHex, ext)

	if _, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   tmp,
	}); err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), shaHex, nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"docuchat-backend/config"
	"docuchat-backend/internal/api/healthcheck"
	"docuchat-backend/internal/api/ingest"
	"docuchat-backend/internal/api/preview"
	"docuchat-backend/internal/api/retriever"
	"docuchat-backend/internal/api/upload"
	"docuchat-backend/internal/database"
	"docuchat-backend/internal/middleware"
	"docuchat-backend/pkg/logger"

	"github.com/gofiber/fiber/v3"
	milvus "github.com/milvus-io/milvus-sdk-go/v2/client"
)

func main() {
	cfg := fiber.Config{
		AppName: config.Cfg.Server.AppName,
	}
	if config.Cfg.Server.BodyLimit > 0 {
		cfg.BodyLimit = config.Cfg.Server.BodyLimit
	}
	if config.Cfg.Server.Concurrency > 0 {
		cfg.Concurrency = config.Cfg.Server.Concurrency
	}
	app := fiber.New(cfg)

	middleware.Register(app, config.Cfg.Server.Concurrency)

	// Dependency connectivity checks on startup. Failures are logged,
	// not fatal; the health endpoints report live status.
	if _, err := database.GetDB(); err != nil {
		logger.Error(err, "mysql connect error")
	} else {
		logger.Info("mysql ok")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	cli, err := milvus.NewClient(ctx, milvus.Config{Address: config.Cfg.Milvus.Address})
	cancel()
	if err != nil {
		logger.Error(err, "milvus connect error")
	} else {
		cli.Close()
		logger.Info("milvus ok")
	}

	healthcheck.RegisterRoutes(app)
	upload.RegisterRoutes(app)
	ingest.RegisterRoutes(app)
	preview.RegisterRoutes(app)
	retriever.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "server error")
	}
}

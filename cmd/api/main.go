package main

import (
	"context"
	"fmt"
	"time"

	"docqa/config"
	"docqa/internal/api/document"
	"docqa/internal/api/healthcheck"
	"docqa/internal/api/history"
	"docqa/internal/api/ingest"
	"docqa/internal/api/query"
	"docqa/internal/api/upload"
	"docqa/internal/middleware"
	"docqa/pkg/logger"

	"github.com/gofiber/fiber/v3"
	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
)

func main() {
	app := fiber.New(fiber.Config{
		AppName:   config.Cfg.Server.AppName,
		BodyLimit: config.Cfg.Server.BodyLimit,
	})

	app.Use(middleware.PanicRecovery())
	app.Use(middleware.Cors())
	if config.Cfg.Server.Concurrency > 0 {
		app.Use(middleware.ConnectionLimit(middleware.NewConnectionLimiter(config.Cfg.Server.Concurrency)))
	}

	// Milvus connectivity check on startup
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	cancel()
	if err != nil {
		logger.Error(err, "milvus connect error")
	} else {
		cli.Close()
		logger.Info("milvus ok")
	}

	// routes
	healthcheck.RegisterRoutes(app)
	upload.RegisterRoutes(app)
	ingest.RegisterRoutes(app)
	query.RegisterRoutes(app)
	document.RegisterRoutes(app)
	history.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Fatal(err, "server error")
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/C-dan93/oil-price-analysis-uk/internal/api/http"
	"github.com/C-dan93/oil-price-analysis-uk/internal/blob"
	"github.com/C-dan93/oil-price-analysis-uk/internal/config"
	"github.com/C-dan93/oil-price-analysis-uk/internal/pipeline"
	"github.com/C-dan93/oil-price-analysis-uk/internal/scheduler"
	"github.com/C-dan93/oil-price-analysis-uk/internal/sources"
	"github.com/C-dan93/oil-price-analysis-uk/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound source calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Sources in integration precedence order: oil < fossil fuel < CO2 < weather.
	srcs := []sources.Source{
		sources.NewOilPriceSource(cfg.OilCSVPath),
		sources.NewWorldBankSource(httpClient, cfg.Window),
		sources.NewCO2Source(cfg.CO2CSVPath),
		sources.NewOpenMeteoSource(httpClient, cfg.WeatherLat, cfg.WeatherLon, cfg.Window),
	}

	// Sink: Azure Blob Storage, or a local directory when no credentials are set.
	var uploader blob.Uploader
	if cfg.AzureConnectionString != "" {
		azure, err := blob.NewAzureUploader(cfg.AzureConnectionString, cfg.BlobContainer)
		if err != nil {
			log.Fatalf("failed to create azure uploader: %v", err)
		}
		uploader = azure
	} else {
		log.Printf("INFO: AZURE_CONNECTION_STRING not set; writing output to %s/", cfg.LocalOutputDir)
		uploader = &blob.DirUploader{Dir: cfg.LocalOutputDir}
	}

	// In-memory run history with configured retention.
	runStore := store.NewRunStore(cfg.StoreMaxRuns, cfg.StoreMaxAge)

	// Pipeline driver sequencing fetch, normalization, integration, and upload.
	pipe := pipeline.New(srcs, uploader, runStore, cfg.Window, cfg.OutputBlobName)

	// Scheduler that periodically runs the pipeline.
	sched := scheduler.New(pipe, cfg.FetchInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "oil-price-analysis-uk",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "oil-price-analysis-uk",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, pipe, runStore)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

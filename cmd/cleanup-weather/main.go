package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	httpapi "github.com/i474232898/cleanup-weather/internal/api/http"
	"github.com/i474232898/cleanup-weather/internal/config"
	"github.com/i474232898/cleanup-weather/internal/logger"
	"github.com/i474232898/cleanup-weather/internal/scheduler"
	"github.com/i474232898/cleanup-weather/internal/store"
	"github.com/i474232898/cleanup-weather/internal/weather"
	"github.com/i474232898/cleanup-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	dotenvErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("failed to build logger: %v", err)
	}
	if dotenvErr != nil {
		lg.WithError(dotenvErr).Info("no .env file loaded; using process environment")
	}

	// Shared HTTP client for outbound calls; per-fetch deadlines come from the aggregator.
	httpClient := &http.Client{
		Timeout: cfg.FetchTimeout,
	}

	source := providers.NewDataGovSource(httpClient, cfg.BaseURL, cfg.FetchMaxRetries)

	agg := weather.NewAggregator(source, weather.AggregatorConfig{
		Preferred:     cfg.PreferredStations,
		Thresholds:    cfg.Thresholds,
		FetchTimeout:  cfg.FetchTimeout,
		LocationLabel: cfg.LocationLabel,
		Location:      cfg.Location,
	}, lg.WithField("component", "aggregator"))

	// Latest-report holder; no history is kept.
	memStore := store.NewMemoryStore()

	service := weather.NewService(agg, memStore, lg.WithField("component", "service"))

	// A cycle is at most one fetch timeout plus slack, since all fetches run concurrently.
	cycleTimeout := cfg.FetchTimeout + 5*time.Second

	sched := scheduler.New(cfg.RefreshInterval, cycleTimeout, service, lg.WithField("component", "scheduler"))
	if err := sched.Start(); err != nil {
		lg.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "cleanup-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cycleTimeout + 5*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "cleanup-weather",
		})
	})

	httpapi.RegisterRoutes(app, service, cfg.Thresholds, cycleTimeout)

	go func() {
		lg.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Errorf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Errorf("error during shutdown: %v", err)
	}
}

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ logs are also batched into system_logs
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	logging.Setup(dbLogHandler)

	cleanup, err := logging.StartCleanup(db, cfg.LogRetentionDays)
	if err != nil {
		slog.Error("log cleanup schedule failed", "error", err)
		os.Exit(1)
	}

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	authService := services.NewAuthService(db, cfg, tokenService)
	tourService := services.NewTourService(db)
	reviewService := services.NewReviewService(db)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		Tours:  handlers.NewTourHandler(tourService),
		Review: handlers.NewReviewHandler(reviewService),
		Health: handlers.NewHealthHandler(db),
	}, tokenService, authService)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	<-cleanup.Stop().Done()
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

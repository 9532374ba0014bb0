package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/linkdeck/linkdeck-backend/internal/auth"
	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/database"
	"github.com/linkdeck/linkdeck-backend/internal/handlers"
	"github.com/linkdeck/linkdeck-backend/internal/logging"
	"github.com/linkdeck/linkdeck-backend/internal/middleware"
	"github.com/linkdeck/linkdeck-backend/internal/routes"
	"github.com/linkdeck/linkdeck-backend/internal/services"
	"github.com/linkdeck/linkdeck-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.IsProduction())

	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		slog.Error("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables are required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.Level(cfg.IsProduction())}),
		pgLogHandler,
	)))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Image storage
	uploader, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		slog.Error("s3 store init failed", "error", err)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	groupService := services.NewGroupService(database.DB)
	bookmarkService := services.NewBookmarkService(database.DB)
	allowListService := services.NewAllowListService(database.DB)

	// Handlers
	googleClient := auth.NewGoogleClient(cfg)
	authHandler := handlers.NewAuthHandler(cfg, googleClient, authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService, uploader)
	allowedEmailHandler := handlers.NewAllowedEmailHandler(allowListService)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Env,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app; body limit matches the image upload ceiling plus form overhead
	app := fiber.New(fiber.Config{
		BodyLimit:    storage.MaxImageSize + 1024*1024,
		ErrorHandler: newErrorHandler(cfg),
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, groupHandler, bookmarkHandler, allowedEmailHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// newErrorHandler hides server error details in production, mirrors them back
// in development.
func newErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= 500 {
			slog.Error("unhandled server error",
				"method", c.Method(),
				"path", c.Path(),
				"request_id", c.Locals("requestid"),
				"error", err.Error(),
			)
			if cfg.IsProduction() {
				message = "An unexpected error occurred. Please try again later."
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"message": message,
		})
	}
}

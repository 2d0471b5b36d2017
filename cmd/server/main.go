package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tickerwire/tickerwire/internal/config"
	"github.com/tickerwire/tickerwire/internal/middleware"
	"github.com/tickerwire/tickerwire/internal/pkg/logger"
)

const appVersion = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Log

	// Initialize dependencies
	deps, err := initDependencies(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "TickerWire API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          errorHandler(log),
	})

	// Apply global middleware
	app.Use(middleware.RequestID())

	loggerMiddleware := middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(log))
	app.Use(loggerMiddleware.Handler())

	recoverMiddleware := middleware.NewRecoverMiddleware(middleware.DefaultRecoverConfig(log))
	app.Use(recoverMiddleware.Handler())

	corsMiddleware := middleware.NewCORSMiddleware(middleware.DefaultCORSConfig())
	app.Use(corsMiddleware.Handler())

	metricsMiddleware := middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig())
	app.Use(metricsMiddleware.Handler())

	// Register routes
	registerRoutes(app, deps)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Info("starting server", zap.String("addr", addr), zap.String("version", appVersion))
		if err := app.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

// errorHandler creates a custom error handler for errors that escape the
// handlers, such as unmatched routes
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= 500 {
			log.Error("request error",
				zap.Int("status", code),
				zap.String("error", err.Error()),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    code,
				"message": message,
			},
		})
	}
}

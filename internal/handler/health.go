package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tickerwire/tickerwire/internal/pkg/database"
)

// HealthHandler handles health check endpoints. The Redis client is nil when
// rate limiting is disabled and is then left out of the checks.
type HealthHandler struct {
	mysql     *database.MySQLDB
	redis     *redis.Client
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mysql *database.MySQLDB, redisClient *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		mysql:     mysql,
		redis:     redisClient,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatus represents health check status
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.mysql.Ping(ctx); err != nil {
		status.Status = "unhealthy"
		status.Checks["mysql"] = "unhealthy: " + err.Error()
	} else {
		status.Checks["mysql"] = "healthy"
	}

	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			status.Status = "unhealthy"
			status.Checks["redis"] = "unhealthy: " + err.Error()
		} else {
			status.Checks["redis"] = "healthy"
		}
	}

	statusCode := fiber.StatusOK
	if status.Status != "healthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(status)
}

// Liveness handles GET /health/live - basic liveness probe
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready - readiness probe
func (h *HealthHandler) Readiness(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	if err := h.mysql.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"reason": "mysql unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// Version handles GET /version
func (h *HealthHandler) Version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": h.version,
		"uptime":  time.Since(h.startTime).String(),
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/health/live", h.Liveness)
	app.Get("/health/ready", h.Readiness)
	app.Get("/version", h.Version)
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDConfig configures the request ID middleware
type RequestIDConfig struct {
	// Header is the header key for the request ID
	Header string
	// Generator generates a new request ID
	Generator func() string
}

// DefaultRequestIDConfig returns default request ID config
func DefaultRequestIDConfig() RequestIDConfig {
	return RequestIDConfig{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.New().String()
		},
	}
}

// RequestID creates a request ID middleware
func RequestID(config ...RequestIDConfig) fiber.Handler {
	cfg := DefaultRequestIDConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		// Reuse the caller's request ID when one is supplied
		requestID := c.Get(cfg.Header)
		if requestID == "" {
			requestID = cfg.Generator()
		}

		c.Set(cfg.Header, requestID)
		c.Locals("requestID", requestID)

		return c.Next()
	}
}

// GetRequestID gets the request ID from context
func GetRequestID(c *fiber.Ctx) string {
	if requestID, ok := c.Locals("requestID").(string); ok {
		return requestID
	}
	return ""
}

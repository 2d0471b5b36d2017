package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RecoverConfig configures the recover middleware
type RecoverConfig struct {
	// Logger instance
	Logger *zap.Logger
	// StackSize limits the stack trace size
	StackSize int
}

// DefaultRecoverConfig returns default recover config
func DefaultRecoverConfig(logger *zap.Logger) RecoverConfig {
	return RecoverConfig{
		Logger:    logger,
		StackSize: 4 << 10, // 4 KB
	}
}

// RecoverMiddleware creates a panic recovery middleware
type RecoverMiddleware struct {
	config RecoverConfig
}

// NewRecoverMiddleware creates a new recover middleware
func NewRecoverMiddleware(config RecoverConfig) *RecoverMiddleware {
	return &RecoverMiddleware{
		config: config,
	}
}

// Handler returns the recover handler
func (m *RecoverMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				if len(stack) > m.config.StackSize {
					stack = stack[:m.config.StackSize]
				}

				var panicErr error
				switch v := r.(type) {
				case error:
					panicErr = v
				default:
					panicErr = fmt.Errorf("%v", v)
				}

				m.config.Logger.Error("panic recovered",
					zap.Error(panicErr),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()),
					zap.String("ip", c.IP()),
					zap.String("stack", string(stack)),
					zap.String("request_id", GetRequestID(c)),
				)

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":      "Internal Server Error",
					"message":    "An unexpected error occurred",
					"request_id": GetRequestID(c),
				})
			}
		}()

		return c.Next()
	}
}

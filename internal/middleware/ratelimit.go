package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Key generator function
	KeyGenerator func(*fiber.Ctx) string
	// Skip function
	Skip func(*fiber.Ctx) bool
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:    100,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Skip: HealthSkipper,
	}
}

// RateLimitMiddleware creates a sliding window rate limiter backed by Redis
type RateLimitMiddleware struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(redisClient *redis.Client, config ...RateLimitConfig) *RateLimitMiddleware {
	cfg := DefaultRateLimitConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return &RateLimitMiddleware{
		redis:  redisClient,
		config: cfg,
	}
}

// Handler returns the rate limit handler
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s", m.config.KeyGenerator(c))
		now := time.Now().Unix()
		windowStart := now - int64(m.config.Window.Seconds())

		ctx := c.Context()

		m.redis.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))

		count, err := m.redis.ZCard(ctx, key).Result()
		if err != nil {
			// Fail open when Redis is unreachable
			return c.Next()
		}

		if count >= int64(m.config.Max) {
			c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
			c.Set("X-RateLimit-Remaining", "0")
			c.Set("X-RateLimit-Reset", strconv.FormatInt(now+int64(m.config.Window.Seconds()), 10))
			c.Set("Retry-After", strconv.FormatInt(int64(m.config.Window.Seconds()), 10))

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Too Many Requests",
				"message": "Rate limit exceeded. Please try again later.",
			})
		}

		m.redis.ZAdd(ctx, key, redis.Z{
			Score:  float64(now),
			Member: fmt.Sprintf("%d:%s", now, GetRequestID(c)),
		})
		m.redis.Expire(ctx, key, m.config.Window*2)

		remaining := m.config.Max - int(count) - 1
		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(now+int64(m.config.Window.Seconds()), 10))

		return c.Next()
	}
}

package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerwire_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tickerwire_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tickerwire_http_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"method"},
	)
)

// MetricsConfig configures the metrics middleware
type MetricsConfig struct {
	// Skip function
	Skip func(*fiber.Ctx) bool
}

// DefaultMetricsConfig returns default metrics config
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Skip: HealthSkipper,
	}
}

// MetricsMiddleware creates a Prometheus metrics middleware
type MetricsMiddleware struct {
	config MetricsConfig
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(config MetricsConfig) *MetricsMiddleware {
	return &MetricsMiddleware{
		config: config,
	}
}

// Handler returns the metrics handler. Routed paths are low-cardinality here
// because every data endpoint lives under a fixed route pattern.
func (m *MetricsMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		start := time.Now()
		method := c.Method()

		httpActiveRequests.WithLabelValues(method).Inc()
		defer httpActiveRequests.WithLabelValues(method).Dec()

		err := c.Next()

		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

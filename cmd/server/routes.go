package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	// Health and version routes (no auth required)
	deps.HealthHandler.RegisterRoutes(app)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Data routes (bearer token auth)
	v1 := app.Group("/api/v1")
	v1.Use(deps.AuthMiddleware.RequireAuth())
	if deps.RateLimitMiddleware != nil {
		v1.Use(deps.RateLimitMiddleware.Handler())
	}

	// Symbol news
	v1.Get("/symbols", deps.NewsHandler.ListSymbols)
	v1.Get("/symbols/:symbol/news", deps.NewsHandler.SymbolNews)
	v1.Get("/search", deps.NewsHandler.Search)
	v1.Get("/documents/:id", deps.NewsHandler.FetchDocument)

	// Tool dispatch for agent-style callers
	v1.Get("/tools", deps.ToolsHandler.ListTools)
	v1.Post("/tools/call", deps.ToolsHandler.CallTool)
}

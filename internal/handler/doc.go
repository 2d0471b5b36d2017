// Package handler contains HTTP request handlers for TickerWire.
//
// Handlers are the entry point for HTTP requests, responsible for:
//   - Request parsing and validation
//   - Authentication context extraction
//   - Calling appropriate services
//   - Response formatting
//   - Error response mapping
//
// # Route Organization
//
//   - /health, /health/live, /health/ready - probes (no auth)
//   - /metrics - Prometheus scrape endpoint (no auth)
//   - /api/v1/* - data routes (bearer token authentication)
//
// The four read operations are exposed twice: as plain REST routes and as
// named tools under /api/v1/tools/call for agent-style callers. Both surfaces
// share one service and return identical payloads.
//
// # Error Handling
//
// Handlers convert domain errors to appropriate HTTP status codes
// using the apperrors package for consistent error responses.
//
// # Thread Safety
//
// All handlers are safe for concurrent use.
package handler

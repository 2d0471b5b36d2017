// Package testutil provides shared test utilities for the TickerWire API.
package testutil

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tickerwire/tickerwire/internal/domain"
	"github.com/tickerwire/tickerwire/internal/middleware"
)

// TestPrincipalMiddleware creates a middleware that sets an authenticated
// principal in context. Use this in tests to simulate authenticated requests
// without minting tokens.
func TestPrincipalMiddleware(subject string, scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(string(middleware.ContextKeyPrincipal), &middleware.Principal{
			Subject: subject,
			Scopes:  scopes,
		})
		return c.Next()
	}
}

// NewTestRow creates a news row shaped like a typical symbol table read.
func NewTestRow(symbol, id, title, date string) domain.Row {
	return domain.Row{
		"id":          id,
		"Title":       title,
		"date":        date,
		"symbol":      symbol,
		"document_id": symbol + ":" + id,
	}
}

// NewTestDocument creates a fetched document with default values.
func NewTestDocument(symbol, key, title string) *domain.Document {
	return &domain.Document{
		ID:    symbol + ":" + key,
		Title: title,
		Text:  title,
		URL:   "mysql://news/" + symbol + "/" + key,
		Metadata: map[string]any{
			"symbol":             symbol,
			"schema":             "news",
			"primary_key_column": "id",
		},
	}
}

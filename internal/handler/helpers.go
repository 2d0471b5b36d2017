package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
)

// parseLimitQuery reads an optional integer limit from the query string.
// Positivity and clamping are the repository's concern; only syntax is
// checked here.
func parseLimitQuery(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.BadRequest("limit must be an integer")
	}
	return &value, nil
}

// parseSymbolsQuery reads a comma-separated symbols filter
func parseSymbolsQuery(c *fiber.Ctx, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			symbols = append(symbols, trimmed)
		}
	}
	return symbols
}

// respondError maps an application error to its HTTP response
func respondError(c *fiber.Ctx, err error) error {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		body := fiber.Map{
			"error":   appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return c.Status(appErr.StatusCode).JSON(body)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   apperrors.CodeInternal,
		"message": "An unexpected error occurred",
	})
}

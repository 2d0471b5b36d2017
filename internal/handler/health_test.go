package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveness(t *testing.T) {
	app := fiber.New()
	h := NewHealthHandler(nil, nil, "test")
	app.Get("/health/live", h.Liveness)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alive", body["status"])
}

func TestVersion(t *testing.T) {
	app := fiber.New()
	h := NewHealthHandler(nil, nil, "1.2.3")
	app.Get("/version", h.Version)

	resp, err := app.Test(httptest.NewRequest("GET", "/version", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1.2.3", body["version"])
	assert.NotEmpty(t, body["uptime"])
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tickerwire/tickerwire/internal/domain"
	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
)

func setupToolsTestApp(mockSvc *MockNewsReader) *fiber.App {
	app := fiber.New()
	h := NewToolsHandler(mockSvc, zap.NewNop())

	app.Get("/api/v1/tools", h.ListTools)
	app.Post("/api/v1/tools/call", h.CallTool)

	return app
}

func postToolCall(t *testing.T, app *fiber.App, payload string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/tools/call", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestListTools(t *testing.T) {
	app := setupToolsTestApp(new(MockNewsReader))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/tools", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	names := make([]string, 0, len(body.Tools))
	for _, tool := range body.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{ToolListSymbols, ToolGetSymbolNews, ToolSearch, ToolFetch}, names)
}

func TestCallTool(t *testing.T) {
	t.Run("list_symbols with no arguments", func(t *testing.T) {
		mockSvc := new(MockNewsReader)
		app := setupToolsTestApp(mockSvc)

		mockSvc.On("ListSymbols", mock.Anything, (*int)(nil)).Return([]string{"AAPL"}, nil)

		status, body := postToolCall(t, app, `{"name":"list_symbols"}`)
		assert.Equal(t, 200, status)
		assert.Equal(t, float64(1), body["count"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("get_symbol_news forwards arguments", func(t *testing.T) {
		mockSvc := new(MockNewsReader)
		app := setupToolsTestApp(mockSvc)

		rows := []domain.Row{{"symbol": "AAPL", "document_id": "AAPL:1"}}
		mockSvc.On("SymbolNews", mock.Anything, "AAPL", "2024-01-01", 10).Return(rows, nil)

		status, body := postToolCall(t, app,
			`{"name":"get_symbol_news","arguments":{"symbol":"AAPL","date_from":"2024-01-01","limit":10}}`)
		assert.Equal(t, 200, status)
		assert.Equal(t, "AAPL", body["symbol"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("get_symbol_news requires a symbol", func(t *testing.T) {
		mockSvc := new(MockNewsReader)
		app := setupToolsTestApp(mockSvc)

		status, body := postToolCall(t, app, `{"name":"get_symbol_news","arguments":{}}`)
		assert.Equal(t, 400, status)
		assert.Equal(t, "Validation Error", body["error"])
	})

	t.Run("search forwards arguments", func(t *testing.T) {
		mockSvc := new(MockNewsReader)
		app := setupToolsTestApp(mockSvc)

		results := []domain.SearchResult{{ID: "AAPL:1", Symbol: "AAPL"}}
		mockSvc.On("Search", mock.Anything, "estimates", []string{"AAPL"}, "", 5).Return(results, nil)

		status, body := postToolCall(t, app,
			`{"name":"search","arguments":{"query":"estimates","symbols":["AAPL"],"limit":5}}`)
		assert.Equal(t, 200, status)
		require.Len(t, body["results"], 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("fetch maps repository errors through the taxonomy", func(t *testing.T) {
		mockSvc := new(MockNewsReader)
		app := setupToolsTestApp(mockSvc)

		mockSvc.On("Fetch", mock.Anything, "NOKEY:1").Return(nil, apperrors.NoPrimaryKey("NOKEY"))

		status, body := postToolCall(t, app, `{"name":"fetch","arguments":{"id":"NOKEY:1"}}`)
		assert.Equal(t, 422, status)
		assert.Equal(t, apperrors.CodeNoPrimaryKey, body["error"])
	})

	t.Run("unknown tool is 404", func(t *testing.T) {
		mockSvc := new(MockNewsReader)
		app := setupToolsTestApp(mockSvc)

		status, body := postToolCall(t, app, `{"name":"summon_bull_market"}`)
		assert.Equal(t, 404, status)
		assert.Equal(t, apperrors.CodeNotFound, body["error"])
	})

	t.Run("missing tool name is a validation error", func(t *testing.T) {
		mockSvc := new(MockNewsReader)
		app := setupToolsTestApp(mockSvc)

		status, body := postToolCall(t, app, `{"arguments":{}}`)
		assert.Equal(t, 400, status)
		assert.Equal(t, "Validation Error", body["error"])
	})
}

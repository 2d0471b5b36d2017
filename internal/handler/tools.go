package handler

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tickerwire/tickerwire/internal/dto"
	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
	"github.com/tickerwire/tickerwire/internal/validator"
)

// Tool names accepted by the dispatch endpoint
const (
	ToolListSymbols   = "list_symbols"
	ToolGetSymbolNews = "get_symbol_news"
	ToolSearch        = "search"
	ToolFetch         = "fetch"
)

// ToolsHandler exposes the read operations as named tools for agent-style
// callers that send one envelope to a single endpoint
type ToolsHandler struct {
	newsService NewsReader
	logger      *zap.Logger
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(newsService NewsReader, logger *zap.Logger) *ToolsHandler {
	return &ToolsHandler{
		newsService: newsService,
		logger:      logger,
	}
}

// ListTools handles GET /api/v1/tools
func (h *ToolsHandler) ListTools(c *fiber.Ctx) error {
	return c.JSON(dto.ToolsResponse{
		Tools: []dto.ToolInfo{
			{Name: ToolListSymbols, Description: "List the available stock symbols"},
			{Name: ToolGetSymbolNews, Description: "Read recent news rows for one symbol"},
			{Name: ToolSearch, Description: "Search news text across symbols"},
			{Name: ToolFetch, Description: "Fetch one news document by id"},
		},
	})
}

// CallTool handles POST /api/v1/tools/call
func (h *ToolsHandler) CallTool(c *fiber.Ctx) error {
	var req dto.ToolCallRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	switch req.Name {
	case ToolListSymbols:
		return h.callListSymbols(c, req.Arguments)
	case ToolGetSymbolNews:
		return h.callSymbolNews(c, req.Arguments)
	case ToolSearch:
		return h.callSearch(c, req.Arguments)
	case ToolFetch:
		return h.callFetch(c, req.Arguments)
	default:
		return respondError(c, apperrors.NotFound(fmt.Sprintf("unknown tool %q", req.Name)))
	}
}

func (h *ToolsHandler) callListSymbols(c *fiber.Ctx, raw json.RawMessage) error {
	var args dto.ListSymbolsArgs
	if err := parseToolArgs(c, raw, &args); err != nil {
		return err
	}

	symbols, err := h.newsService.ListSymbols(c.Context(), args.Limit)
	if err != nil {
		h.logError(ToolListSymbols, err)
		return respondError(c, err)
	}
	return c.JSON(dto.NewSymbolsResponse(symbols))
}

func (h *ToolsHandler) callSymbolNews(c *fiber.Ctx, raw json.RawMessage) error {
	var args dto.SymbolNewsArgs
	if err := parseToolArgs(c, raw, &args); err != nil {
		return err
	}

	rows, err := h.newsService.SymbolNews(c.Context(), args.Symbol, args.DateFrom, args.Limit)
	if err != nil {
		h.logError(ToolGetSymbolNews, err, zap.String("symbol", args.Symbol))
		return respondError(c, err)
	}
	return c.JSON(dto.NewSymbolNewsResponse(args.Symbol, rows))
}

func (h *ToolsHandler) callSearch(c *fiber.Ctx, raw json.RawMessage) error {
	var args dto.SearchArgs
	if err := parseToolArgs(c, raw, &args); err != nil {
		return err
	}

	results, err := h.newsService.Search(c.Context(), args.Query, args.Symbols, args.DateFrom, args.Limit)
	if err != nil {
		h.logError(ToolSearch, err)
		return respondError(c, err)
	}
	return c.JSON(dto.NewSearchResponse(results))
}

func (h *ToolsHandler) callFetch(c *fiber.Ctx, raw json.RawMessage) error {
	var args dto.FetchArgs
	if err := parseToolArgs(c, raw, &args); err != nil {
		return err
	}

	doc, err := h.newsService.Fetch(c.Context(), args.ID)
	if err != nil {
		h.logError(ToolFetch, err, zap.String("id", args.ID))
		return respondError(c, err)
	}
	return c.JSON(doc)
}

// parseToolArgs unmarshals and validates a tool argument payload. A missing
// arguments object means all-default arguments.
func parseToolArgs(c *fiber.Ctx, raw json.RawMessage, v any) error {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, v); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Bad Request",
				"message": "Invalid tool arguments: " + err.Error(),
			})
		}
	}

	if err := validator.Validate(v); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Validation Error",
				"message": "Tool argument validation failed",
				"errors":  validationErrors,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Bad Request",
			"message": err.Error(),
		})
	}
	return nil
}

func (h *ToolsHandler) logError(tool string, err error, fields ...zap.Field) {
	if apperrors.GetStatusCode(err) < 500 {
		return
	}
	h.logger.Error("tool call failed", append(fields, zap.String("tool", tool), zap.Error(err))...)
}

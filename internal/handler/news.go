package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tickerwire/tickerwire/internal/domain"
	"github.com/tickerwire/tickerwire/internal/dto"
	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
)

// NewsReader is the service surface the news handlers consume
type NewsReader interface {
	ListSymbols(ctx context.Context, limit *int) ([]string, error)
	SymbolNews(ctx context.Context, symbol, dateFrom string, limit int) ([]domain.Row, error)
	Search(ctx context.Context, query string, symbols []string, dateFrom string, limit int) ([]domain.SearchResult, error)
	Fetch(ctx context.Context, id string) (*domain.Document, error)
}

// NewsHandler handles the REST routes over symbol news
type NewsHandler struct {
	newsService NewsReader
	logger      *zap.Logger
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService NewsReader, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
		logger:      logger,
	}
}

// ListSymbols handles GET /api/v1/symbols
func (h *NewsHandler) ListSymbols(c *fiber.Ctx) error {
	limit, err := parseLimitQuery(c, "limit")
	if err != nil {
		return respondError(c, err)
	}

	symbols, err := h.newsService.ListSymbols(c.Context(), limit)
	if err != nil {
		h.logError("failed to list symbols", err)
		return respondError(c, err)
	}

	return c.JSON(dto.NewSymbolsResponse(symbols))
}

// SymbolNews handles GET /api/v1/symbols/:symbol/news
func (h *NewsHandler) SymbolNews(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	if symbol == "" {
		return respondError(c, apperrors.BadRequest("symbol is required"))
	}

	limit, err := parseLimitQuery(c, "limit")
	if err != nil {
		return respondError(c, err)
	}
	requested := 0
	if limit != nil {
		requested = *limit
	}

	rows, err := h.newsService.SymbolNews(c.Context(), symbol, c.Query("date_from"), requested)
	if err != nil {
		h.logError("failed to read symbol news", err, zap.String("symbol", symbol))
		return respondError(c, err)
	}

	return c.JSON(dto.NewSymbolNewsResponse(symbol, rows))
}

// Search handles GET /api/v1/search
func (h *NewsHandler) Search(c *fiber.Ctx) error {
	limit, err := parseLimitQuery(c, "limit")
	if err != nil {
		return respondError(c, err)
	}
	requested := 0
	if limit != nil {
		requested = *limit
	}

	results, err := h.newsService.Search(
		c.Context(),
		c.Query("q"),
		parseSymbolsQuery(c, "symbols"),
		c.Query("date_from"),
		requested,
	)
	if err != nil {
		h.logError("search failed", err)
		return respondError(c, err)
	}

	return c.JSON(dto.NewSearchResponse(results))
}

// FetchDocument handles GET /api/v1/documents/:id
func (h *NewsHandler) FetchDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, apperrors.BadRequest("document id is required"))
	}

	doc, err := h.newsService.Fetch(c.Context(), id)
	if err != nil {
		h.logError("failed to fetch document", err, zap.String("id", id))
		return respondError(c, err)
	}

	return c.JSON(doc)
}

// logError logs server-side failures; expected client errors stay quiet
func (h *NewsHandler) logError(msg string, err error, fields ...zap.Field) {
	if apperrors.GetStatusCode(err) < 500 {
		return
	}
	h.logger.Error(msg, append(fields, zap.Error(err))...)
}

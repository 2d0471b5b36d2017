package service

import (
	"context"
	"strings"

	"github.com/tickerwire/tickerwire/internal/config"
	"github.com/tickerwire/tickerwire/internal/domain"
)

// SymbolReader defines the read operations the news repository exposes
type SymbolReader interface {
	ListSymbols(ctx context.Context, limit *int) ([]string, error)
	SymbolNews(ctx context.Context, symbol, dateFrom string, limit int) ([]domain.Row, error)
	Search(ctx context.Context, query string, symbols []string, dateFrom string, limit int) ([]domain.SearchResult, error)
	Fetch(ctx context.Context, id string) (*domain.Document, error)
}

// NewsService handles symbol news operations
type NewsService struct {
	repo   SymbolReader
	limits config.LimitsConfig
}

// NewNewsService creates a new news service
func NewNewsService(repo SymbolReader, limits config.LimitsConfig) *NewsService {
	return &NewsService{
		repo:   repo,
		limits: limits,
	}
}

// ListSymbols returns the symbol inventory. A nil limit means the configured
// default listing size.
func (s *NewsService) ListSymbols(ctx context.Context, limit *int) ([]string, error) {
	if limit == nil && s.limits.DefaultListLimit > 0 {
		def := s.limits.DefaultListLimit
		limit = &def
	}
	return s.repo.ListSymbols(ctx, limit)
}

// SymbolNews returns recent rows for one symbol. A zero limit falls back to
// the configured query default.
func (s *NewsService) SymbolNews(ctx context.Context, symbol, dateFrom string, limit int) ([]domain.Row, error) {
	return s.repo.SymbolNews(ctx, strings.TrimSpace(symbol), strings.TrimSpace(dateFrom), s.queryLimit(limit))
}

// Search matches the query across symbol tables. A zero limit falls back to
// the configured query default.
func (s *NewsService) Search(ctx context.Context, query string, symbols []string, dateFrom string, limit int) ([]domain.SearchResult, error) {
	return s.repo.Search(ctx, query, symbols, strings.TrimSpace(dateFrom), s.queryLimit(limit))
}

// queryLimit substitutes the default for an absent limit. Negative limits
// pass through so the repository rejects them.
func (s *NewsService) queryLimit(limit int) int {
	if limit == 0 {
		if s.limits.DefaultQueryLimit > 0 {
			return s.limits.DefaultQueryLimit
		}
		return s.limits.MaxRows
	}
	return limit
}

// Fetch retrieves one document by id
func (s *NewsService) Fetch(ctx context.Context, id string) (*domain.Document, error) {
	return s.repo.Fetch(ctx, strings.TrimSpace(id))
}

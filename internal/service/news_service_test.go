package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/internal/config"
	"github.com/tickerwire/tickerwire/internal/domain"
	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
)

// MockSymbolReader is a mock implementation of SymbolReader
type MockSymbolReader struct {
	mock.Mock
}

func (m *MockSymbolReader) ListSymbols(ctx context.Context, limit *int) ([]string, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSymbolReader) SymbolNews(ctx context.Context, symbol, dateFrom string, limit int) ([]domain.Row, error) {
	args := m.Called(ctx, symbol, dateFrom, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Row), args.Error(1)
}

func (m *MockSymbolReader) Search(ctx context.Context, query string, symbols []string, dateFrom string, limit int) ([]domain.SearchResult, error) {
	args := m.Called(ctx, query, symbols, dateFrom, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchResult), args.Error(1)
}

func (m *MockSymbolReader) Fetch(ctx context.Context, id string) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MaxRows:           200,
		MaxScanSymbols:    50,
		DefaultListLimit:  500,
		DefaultQueryLimit: 50,
	}
}

func TestNewsServiceListSymbols(t *testing.T) {
	ctx := context.Background()

	t.Run("applies default listing limit when none given", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		def := 500
		repo.On("ListSymbols", ctx, &def).Return([]string{"AAPL", "MSFT"}, nil)

		symbols, err := svc.ListSymbols(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
		repo.AssertExpectations(t)
	})

	t.Run("passes explicit limit through", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		one := 1
		repo.On("ListSymbols", ctx, &one).Return([]string{"AAPL"}, nil)

		symbols, err := svc.ListSymbols(ctx, &one)
		require.NoError(t, err)
		assert.Equal(t, []string{"AAPL"}, symbols)
		repo.AssertExpectations(t)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		def := 500
		repo.On("ListSymbols", ctx, &def).Return(nil, apperrors.MetadataUnavailable(assert.AnError))

		_, err := svc.ListSymbols(ctx, nil)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeMetadataUnavailable))
	})
}

func TestNewsServiceSymbolNews(t *testing.T) {
	ctx := context.Background()

	t.Run("trims inputs and defaults zero limit to the query default", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		rows := []domain.Row{{"symbol": "AAPL", "document_id": "AAPL:1"}}
		repo.On("SymbolNews", ctx, "AAPL", "2024-01-01", 50).Return(rows, nil)

		got, err := svc.SymbolNews(ctx, " AAPL ", " 2024-01-01 ", 0)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
		repo.AssertExpectations(t)
	})

	t.Run("falls back to the row cap when no query default is configured", func(t *testing.T) {
		repo := new(MockSymbolReader)
		limits := testLimits()
		limits.DefaultQueryLimit = 0
		svc := NewNewsService(repo, limits)

		repo.On("SymbolNews", ctx, "AAPL", "", 200).Return([]domain.Row{}, nil)

		_, err := svc.SymbolNews(ctx, "AAPL", "", 0)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("negative limit reaches the repository for rejection", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		repo.On("SymbolNews", ctx, "AAPL", "", -3).Return(nil, apperrors.InvalidLimit(-3))

		_, err := svc.SymbolNews(ctx, "AAPL", "", -3)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidLimit))
	})
}

func TestNewsServiceSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates with defaults applied", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		results := []domain.SearchResult{{ID: "AAPL:1", Title: "Apple beats estimates", Symbol: "AAPL"}}
		repo.On("Search", ctx, "estimates", []string{"AAPL"}, "", 50).Return(results, nil)

		got, err := svc.Search(ctx, "estimates", []string{"AAPL"}, "", 0)
		require.NoError(t, err)
		assert.Equal(t, results, got)
		repo.AssertExpectations(t)
	})

	t.Run("propagates unknown symbol errors", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		repo.On("Search", ctx, "estimates", []string{"TSLA"}, "", 5).Return(nil, apperrors.UnknownSymbol("TSLA"))

		_, err := svc.Search(ctx, "estimates", []string{"TSLA"}, "", 5)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnknownSymbol(err))
	})
}

func TestNewsServiceFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("trims the id before delegating", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		doc := &domain.Document{ID: "AAPL:1", Title: "Apple beats estimates"}
		repo.On("Fetch", ctx, "AAPL:1").Return(doc, nil)

		got, err := svc.Fetch(ctx, "  AAPL:1  ")
		require.NoError(t, err)
		assert.Equal(t, doc, got)
		repo.AssertExpectations(t)
	})

	t.Run("propagates malformed id errors", func(t *testing.T) {
		repo := new(MockSymbolReader)
		svc := NewNewsService(repo, testLimits())

		repo.On("Fetch", ctx, "bogus").Return(nil, apperrors.MalformedID("bogus"))

		_, err := svc.Fetch(ctx, "bogus")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeMalformedID))
	})
}

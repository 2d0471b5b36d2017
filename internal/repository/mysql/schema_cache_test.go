package mysql

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/internal/domain"
	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
)

// seededCache builds a cache with discovery already done, so lookups never
// touch a database.
func seededCache(tables []string) *SchemaCache {
	c := &SchemaCache{
		tables:      make(map[string]struct{}, len(tables)),
		lookup:      make(map[string]string, len(tables)),
		columns:     make(map[string][]domain.ColumnMetadata),
		primaryKeys: make(map[string]*string),
	}
	for _, name := range tables {
		c.tables[name] = struct{}{}
		c.lookup[strings.ToLower(name)] = name
	}
	return c
}

func TestSchemaCacheResolve(t *testing.T) {
	cache := seededCache([]string{"AAPL", "MSFT", "BRK.B"})
	ctx := context.Background()

	t.Run("exact match returns canonical case", func(t *testing.T) {
		got, err := cache.Resolve(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, "AAPL", got)
	})

	t.Run("case-insensitive match returns canonical case", func(t *testing.T) {
		for _, raw := range []string{"aapl", "Aapl", "aApL"} {
			got, err := cache.Resolve(ctx, raw)
			require.NoError(t, err)
			assert.Equal(t, "AAPL", got)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := cache.Resolve(ctx, "  msft ")
		require.NoError(t, err)
		assert.Equal(t, "MSFT", got)
	})

	t.Run("unknown symbol fails", func(t *testing.T) {
		_, err := cache.Resolve(ctx, "TSLA")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnknownSymbol(err))
	})

	t.Run("every inventory symbol resolves from lowercase", func(t *testing.T) {
		symbols, err := cache.Tables(ctx)
		require.NoError(t, err)
		for _, symbol := range symbols {
			got, err := cache.Resolve(ctx, strings.ToLower(symbol))
			require.NoError(t, err)
			assert.Equal(t, symbol, got)
		}
	})
}

func TestSchemaCacheTables(t *testing.T) {
	cache := seededCache([]string{"MSFT", "AAPL", "GOOG"})

	symbols, err := cache.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT"}, symbols)
}

func TestSchemaCachePrimaryKeyCachedEntries(t *testing.T) {
	cache := seededCache([]string{"AAPL", "NOKEY"})
	id := "id"
	cache.primaryKeys["AAPL"] = &id
	cache.primaryKeys["NOKEY"] = nil

	ctx := context.Background()

	key, ok, err := cache.PrimaryKey(ctx, "AAPL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "id", key)

	// A cached "no key" answer is distinct from an undiscovered table.
	_, ok, err = cache.PrimaryKey(ctx, "NOKEY")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchableColumns(t *testing.T) {
	t.Run("prefers title-like names in priority order", func(t *testing.T) {
		columns := []domain.ColumnMetadata{
			{Name: "id", DataType: "int"},
			{Name: "summary", DataType: "text"},
			{Name: "Title", DataType: "varchar"},
			{Name: "price", DataType: "decimal"},
		}
		assert.Equal(t, []string{"Title", "summary"}, searchableColumns(columns))
	})

	t.Run("falls back to text-typed columns capped at three", func(t *testing.T) {
		columns := []domain.ColumnMetadata{
			{Name: "a", DataType: "varchar"},
			{Name: "b", DataType: "int"},
			{Name: "c", DataType: "TEXT"},
			{Name: "d", DataType: "longtext"},
			{Name: "e", DataType: "char"},
		}
		assert.Equal(t, []string{"a", "c", "d"}, searchableColumns(columns))
	})

	t.Run("no text columns means unsearchable", func(t *testing.T) {
		columns := []domain.ColumnMetadata{
			{Name: "id", DataType: "int"},
			{Name: "price", DataType: "decimal"},
		}
		assert.Empty(t, searchableColumns(columns))
	})
}

func TestDateColumn(t *testing.T) {
	t.Run("first match in priority order wins", func(t *testing.T) {
		columns := []domain.ColumnMetadata{
			{Name: "created_at", DataType: "datetime"},
			{Name: "date", DataType: "date"},
		}
		assert.Equal(t, "date", dateColumn(columns))
	})

	t.Run("falls through the priority list", func(t *testing.T) {
		columns := []domain.ColumnMetadata{
			{Name: "publishedAt", DataType: "datetime"},
		}
		assert.Equal(t, "publishedAt", dateColumn(columns))
	})

	t.Run("none present means no date handling", func(t *testing.T) {
		columns := []domain.ColumnMetadata{
			{Name: "Title", DataType: "varchar"},
		}
		assert.Equal(t, "", dateColumn(columns))
	})
}

package mysql

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tickerwire/tickerwire/internal/domain"
	"github.com/tickerwire/tickerwire/internal/pkg/database"
	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
	"github.com/tickerwire/tickerwire/internal/pkg/metrics"
)

// preferredTextColumns are title-like column names probed in priority order,
// both for search targeting and title extraction.
var preferredTextColumns = []string{
	"Title", "title",
	"headline", "Headline",
	"summary", "Summary",
	"description", "Description",
	"content", "Content",
	"body", "Body",
}

// preferredDateColumns are date-like column names probed in priority order.
// The first match drives both filtering and descending ordering.
var preferredDateColumns = []string{
	"date", "Date",
	"published_at", "publishedAt",
	"created_at", "datetime",
}

// textDataTypes are the MySQL character types eligible as search fallbacks.
var textDataTypes = map[string]struct{}{
	"char":       {},
	"varchar":    {},
	"tinytext":   {},
	"text":       {},
	"mediumtext": {},
	"longtext":   {},
}

// maxFallbackSearchColumns caps type-based search columns when no preferred
// name is present.
const maxFallbackSearchColumns = 3

// SchemaCache lazily discovers and memoizes the table inventory, per-table
// column metadata, and per-table primary key of the configured schema.
//
// Entries are populated on first access and never invalidated within the
// process lifetime; schema changes made after startup are not observed until
// restart. Concurrent first-population races are tolerated: discovery runs
// without the write lock, so two requests may both query information_schema
// and the last write wins with an identical result. Discovery failures leave
// the cache unpopulated so a later call retries.
type SchemaCache struct {
	db     *database.MySQLDB
	schema string

	mu          sync.RWMutex
	tables      map[string]struct{} // canonical table names; nil until loaded
	lookup      map[string]string   // lower(table) -> canonical table
	columns     map[string][]domain.ColumnMetadata
	primaryKeys map[string]*string // entry present = discovered; nil value = no key
}

// NewSchemaCache creates a schema cache over the given schema
func NewSchemaCache(db *database.MySQLDB) *SchemaCache {
	return &SchemaCache{
		db:          db,
		schema:      db.Schema,
		columns:     make(map[string][]domain.ColumnMetadata),
		primaryKeys: make(map[string]*string),
	}
}

// Tables returns all canonical symbol table names, lexicographically sorted
func (c *SchemaCache) Tables(ctx context.Context) ([]string, error) {
	tables, _, err := c.tableInventory(ctx)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(tables))
	for name := range tables {
		symbols = append(symbols, name)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// Resolve normalizes a caller-supplied symbol to its canonical table name.
// Matching is exact first, then case-insensitive; output is always canonical
// case. This is the only gate through which dynamic identifiers may pass
// before being quoted into SQL.
func (c *SchemaCache) Resolve(ctx context.Context, rawSymbol string) (string, error) {
	tables, lookup, err := c.tableInventory(ctx)
	if err != nil {
		return "", err
	}

	normalized := strings.TrimSpace(rawSymbol)
	if _, ok := tables[normalized]; ok {
		return normalized, nil
	}
	if canonical, ok := lookup[strings.ToLower(normalized)]; ok {
		return canonical, nil
	}
	return "", apperrors.UnknownSymbol(rawSymbol)
}

// Columns returns the column metadata of a canonical symbol table in ordinal
// position order
func (c *SchemaCache) Columns(ctx context.Context, symbol string) ([]domain.ColumnMetadata, error) {
	c.mu.RLock()
	cached, ok := c.columns[symbol]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	metrics.RecordSchemaCacheMiss("columns")

	// MySQL 8 labels information_schema results in uppercase; the aliases pin
	// the case the struct tags expect.
	query := `
		SELECT column_name AS column_name, data_type AS data_type
		FROM information_schema.columns
		WHERE table_schema = ?
		  AND table_name = ?
		ORDER BY ordinal_position
	`
	var columns []domain.ColumnMetadata
	if err := c.db.DB.SelectContext(ctx, &columns, query, c.schema, symbol); err != nil {
		return nil, apperrors.MetadataUnavailable(err)
	}

	c.mu.Lock()
	c.columns[symbol] = columns
	c.mu.Unlock()
	return columns, nil
}

// PrimaryKey returns the first primary key column (by ordinal position) of a
// canonical symbol table, or ok=false if the table has none
func (c *SchemaCache) PrimaryKey(ctx context.Context, symbol string) (string, bool, error) {
	c.mu.RLock()
	cached, ok := c.primaryKeys[symbol]
	c.mu.RUnlock()
	if ok {
		if cached == nil {
			return "", false, nil
		}
		return *cached, true, nil
	}

	metrics.RecordSchemaCacheMiss("primary_key")

	query := `
		SELECT k.column_name
		FROM information_schema.table_constraints t
		JOIN information_schema.key_column_usage k
		  ON t.constraint_name = k.constraint_name
		 AND t.table_schema = k.table_schema
		 AND t.table_name = k.table_name
		WHERE t.constraint_type = 'PRIMARY KEY'
		  AND t.table_schema = ?
		  AND t.table_name = ?
		ORDER BY k.ordinal_position
		LIMIT 1
	`
	var names []string
	if err := c.db.DB.SelectContext(ctx, &names, query, c.schema, symbol); err != nil {
		return "", false, apperrors.MetadataUnavailable(err)
	}

	var entry *string
	if len(names) > 0 {
		entry = &names[0]
	}

	c.mu.Lock()
	c.primaryKeys[symbol] = entry
	c.mu.Unlock()

	if entry == nil {
		return "", false, nil
	}
	return *entry, true, nil
}

// SearchableColumns returns the columns to LIKE-match for a symbol: preferred
// title-like names when any are present, otherwise up to three text-typed
// columns. An empty result means the symbol is not searchable and search
// skips it silently.
func (c *SchemaCache) SearchableColumns(ctx context.Context, symbol string) ([]string, error) {
	columns, err := c.Columns(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return searchableColumns(columns), nil
}

// DateColumn returns the symbol's date-like column, or ok=false if none of
// the well-known names are present
func (c *SchemaCache) DateColumn(ctx context.Context, symbol string) (string, bool, error) {
	columns, err := c.Columns(ctx, symbol)
	if err != nil {
		return "", false, err
	}
	name := dateColumn(columns)
	return name, name != "", nil
}

// tableInventory returns the canonical table set and the lowercase lookup
// map, discovering both on first use
func (c *SchemaCache) tableInventory(ctx context.Context) (map[string]struct{}, map[string]string, error) {
	c.mu.RLock()
	tables, lookup := c.tables, c.lookup
	c.mu.RUnlock()
	if tables != nil {
		return tables, lookup, nil
	}

	metrics.RecordSchemaCacheMiss("tables")

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ?
		  AND table_type = 'BASE TABLE'
	`
	var names []string
	if err := c.db.DB.SelectContext(ctx, &names, query, c.schema); err != nil {
		return nil, nil, apperrors.MetadataUnavailable(err)
	}

	tables = make(map[string]struct{}, len(names))
	lookup = make(map[string]string, len(names))
	for _, name := range names {
		tables[name] = struct{}{}
		lookup[strings.ToLower(name)] = name
	}

	c.mu.Lock()
	c.tables = tables
	c.lookup = lookup
	c.mu.Unlock()
	return tables, lookup, nil
}

// searchableColumns applies the search-target policy to a column list
func searchableColumns(columns []domain.ColumnMetadata) []string {
	available := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		available[col.Name] = struct{}{}
	}

	var preferred []string
	for _, name := range preferredTextColumns {
		if _, ok := available[name]; ok {
			preferred = append(preferred, name)
		}
	}
	if len(preferred) > 0 {
		return preferred
	}

	var fallback []string
	for _, col := range columns {
		if _, ok := textDataTypes[strings.ToLower(col.DataType)]; ok {
			fallback = append(fallback, col.Name)
			if len(fallback) == maxFallbackSearchColumns {
				break
			}
		}
	}
	return fallback
}

// dateColumn applies the date-column policy to a column list; "" means none
func dateColumn(columns []domain.ColumnMetadata) string {
	available := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		available[col.Name] = struct{}{}
	}
	for _, candidate := range preferredDateColumns {
		if _, ok := available[candidate]; ok {
			return candidate
		}
	}
	return ""
}

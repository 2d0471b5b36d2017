package mysql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tickerwire/tickerwire/internal/config"
	"github.com/tickerwire/tickerwire/internal/domain"
	"github.com/tickerwire/tickerwire/internal/pkg/database"
	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
	"github.com/tickerwire/tickerwire/internal/pkg/metrics"
)

// NewsRepository orchestrates schema discovery, identifier validation, and
// query execution for the four read operations over symbol tables
type NewsRepository struct {
	db             *database.MySQLDB
	schemaCache    *SchemaCache
	schema         string
	maxRows        int
	maxScanSymbols int
	logger         *zap.Logger
}

// NewNewsRepository creates a news repository over the given pool and cache
func NewNewsRepository(db *database.MySQLDB, cache *SchemaCache, limits config.LimitsConfig, logger *zap.Logger) *NewsRepository {
	return &NewsRepository{
		db:             db,
		schemaCache:    cache,
		schema:         db.Schema,
		maxRows:        limits.MaxRows,
		maxScanSymbols: limits.MaxScanSymbols,
		logger:         logger,
	}
}

// ListSymbols returns all canonical symbols, sorted, truncated to limit when
// one is given
func (r *NewsRepository) ListSymbols(ctx context.Context, limit *int) ([]string, error) {
	symbols, err := r.schemaCache.Tables(ctx)
	if err != nil {
		return nil, err
	}
	if limit == nil {
		return symbols, nil
	}

	rowLimit, err := safeLimit(*limit, r.maxRows)
	if err != nil {
		return nil, err
	}
	if rowLimit < len(symbols) {
		symbols = symbols[:rowLimit]
	}
	return symbols, nil
}

// SymbolNews reads rows from one symbol table. When the table has a date
// column, rows are ordered by it descending and, if dateFrom is given,
// filtered to dates at or after it. Every row is augmented with the canonical
// symbol and its computed document id.
func (r *NewsRepository) SymbolNews(ctx context.Context, symbol, dateFrom string, limit int) ([]domain.Row, error) {
	canonical, err := r.schemaCache.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}
	rowLimit, err := safeLimit(limit, r.maxRows)
	if err != nil {
		return nil, err
	}
	dateCol, hasDate, err := r.schemaCache.DateColumn(ctx, canonical)
	if err != nil {
		return nil, err
	}

	var (
		whereClause string
		orderClause string
		args        []any
	)
	if dateFrom != "" && hasDate {
		if err := validateDate(dateFrom); err != nil {
			return nil, err
		}
		whereClause = fmt.Sprintf(" WHERE %s >= ?", quoteIdentifier(dateCol))
		args = append(args, dateFrom+" 00:00:00")
	}
	if hasDate {
		orderClause = fmt.Sprintf(" ORDER BY %s DESC", quoteIdentifier(dateCol))
	}
	args = append(args, rowLimit)

	query := fmt.Sprintf("SELECT * FROM %s%s%s LIMIT ?", quoteIdentifier(canonical), whereClause, orderClause)
	rows, err := r.query(ctx, "symbol_news", query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Row, 0, len(rows))
	for _, row := range rows {
		augmented, err := r.augmentRow(ctx, canonical, row)
		if err != nil {
			return nil, err
		}
		out = append(out, augmented)
	}
	return out, nil
}

// Search LIKE-matches the query across the searchable columns of the target
// symbols, in order, until the result budget is exhausted. A blank query
// returns no results without touching the store; symbols with no searchable
// columns are skipped silently.
func (r *NewsRepository) Search(ctx context.Context, query string, symbols []string, dateFrom string, limit int) ([]domain.SearchResult, error) {
	cleaned := strings.TrimSpace(query)
	if cleaned == "" {
		return []domain.SearchResult{}, nil
	}

	rowLimit, err := safeLimit(limit, r.maxRows)
	if err != nil {
		return nil, err
	}
	targets, err := r.targetSymbols(ctx, symbols)
	if err != nil {
		return nil, err
	}
	if dateFrom != "" {
		if err := validateDate(dateFrom); err != nil {
			return nil, err
		}
	}

	results := make([]domain.SearchResult, 0, rowLimit)
	for _, symbol := range targets {
		if len(results) >= rowLimit {
			break
		}

		searchCols, err := r.schemaCache.SearchableColumns(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if len(searchCols) == 0 {
			continue
		}
		dateCol, hasDate, err := r.schemaCache.DateColumn(ctx, symbol)
		if err != nil {
			return nil, err
		}

		clauses := make([]string, 0, len(searchCols))
		args := []any{}
		pattern := "%" + cleaned + "%"
		for _, col := range searchCols {
			clauses = append(clauses, fmt.Sprintf("%s LIKE ?", quoteIdentifier(col)))
			args = append(args, pattern)
		}
		whereSQL := "(" + strings.Join(clauses, " OR ") + ")"

		if dateFrom != "" && hasDate {
			whereSQL += fmt.Sprintf(" AND %s >= ?", quoteIdentifier(dateCol))
			args = append(args, dateFrom+" 00:00:00")
		}

		orderClause := ""
		if hasDate {
			orderClause = fmt.Sprintf(" ORDER BY %s DESC", quoteIdentifier(dateCol))
		}

		tableLimit := rowLimit - len(results)
		if tableLimit > r.maxRows {
			tableLimit = r.maxRows
		}
		args = append(args, tableLimit)

		stmt := fmt.Sprintf("SELECT * FROM %s WHERE %s%s LIMIT ?", quoteIdentifier(symbol), whereSQL, orderClause)
		rows, err := r.query(ctx, "search", stmt, args...)
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			result, err := r.searchResult(ctx, symbol, row)
			if err != nil {
				return nil, err
			}
			results = append(results, result)
		}
	}

	if len(results) > rowLimit {
		results = results[:rowLimit]
	}
	return results, nil
}

// Fetch retrieves one Document by its "<SYMBOL>:<PRIMARY_KEY_VALUE>" id.
// Keyless tables cannot be pointed at by a single id for repeat fetches, so
// they fail with NoPrimaryKey.
func (r *NewsRepository) Fetch(ctx context.Context, id string) (*domain.Document, error) {
	symbol, rawKey, found := strings.Cut(id, ":")
	if !found {
		return nil, apperrors.MalformedID(id)
	}

	canonical, err := r.schemaCache.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}
	primaryKey, hasKey, err := r.schemaCache.PrimaryKey(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if !hasKey {
		return nil, apperrors.NoPrimaryKey(canonical)
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = ? LIMIT 1",
		quoteIdentifier(canonical), quoteIdentifier(primaryKey))
	rows, err := r.query(ctx, "fetch", query, rawKey)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound(fmt.Sprintf("no row found for id %q", id))
	}

	row := rows[0]
	title := extractTitle(row)
	if title == "" {
		title = fmt.Sprintf("%s news item", canonical)
	}

	return &domain.Document{
		ID:    documentID(canonical, primaryKey, row),
		Title: title,
		Text:  extractBody(row),
		URL:   r.rowURL(canonical, rawKey),
		Metadata: map[string]any{
			"symbol":             canonical,
			"schema":             r.schema,
			"primary_key_column": primaryKey,
			"raw_row":            map[string]any(row),
		},
	}, nil
}

// targetSymbols resolves the symbol set for a search call: the validated
// explicit list with order preserved and duplicates removed, or the
// lexicographically first MaxScanSymbols of the inventory
func (r *NewsRepository) targetSymbols(ctx context.Context, symbols []string) ([]string, error) {
	if len(symbols) == 0 {
		all, err := r.schemaCache.Tables(ctx)
		if err != nil {
			return nil, err
		}
		if len(all) > r.maxScanSymbols {
			all = all[:r.maxScanSymbols]
		}
		return all, nil
	}

	seen := make(map[string]struct{}, len(symbols))
	validated := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		canonical, err := r.schemaCache.Resolve(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		validated = append(validated, canonical)
	}
	if len(validated) > r.maxScanSymbols {
		validated = validated[:r.maxScanSymbols]
	}
	return validated, nil
}

// augmentRow copies a row and attaches the canonical symbol and document id
func (r *NewsRepository) augmentRow(ctx context.Context, symbol string, row domain.Row) (domain.Row, error) {
	primaryKey, _, err := r.schemaCache.PrimaryKey(ctx, symbol)
	if err != nil {
		return nil, err
	}

	out := make(domain.Row, len(row)+2)
	for k, v := range row {
		out[k] = v
	}
	out["symbol"] = symbol
	out["document_id"] = documentID(symbol, primaryKey, row)
	return out, nil
}

// searchResult shapes one matched row for the search response
func (r *NewsRepository) searchResult(ctx context.Context, symbol string, row domain.Row) (domain.SearchResult, error) {
	primaryKey, _, err := r.schemaCache.PrimaryKey(ctx, symbol)
	if err != nil {
		return domain.SearchResult{}, err
	}

	docID := documentID(symbol, primaryKey, row)
	title := extractTitle(row)
	if title == "" {
		title = fmt.Sprintf("%s news item", symbol)
	}

	// An empty date value falls through to the next variant, same as nil.
	var date *string
	for _, candidate := range []string{"date", "Date"} {
		if value := stringValue(row[candidate]); value != "" {
			date = &value
			break
		}
	}

	_, key, _ := strings.Cut(docID, ":")
	return domain.SearchResult{
		ID:     docID,
		Title:  title,
		URL:    r.rowURL(symbol, key),
		Text:   snippet(extractBody(row)),
		Symbol: symbol,
		Date:   date,
	}, nil
}

// rowURL renders the traceability URL for a row
func (r *NewsRepository) rowURL(symbol, key string) string {
	return fmt.Sprintf("mysql://%s/%s/%s", r.schema, symbol, key)
}

// query acquires a pooled connection, binds args, and materializes the result
// as column-keyed rows. Values are always bound; only identifiers already
// validated against the schema cache appear in the SQL text. Driver errors
// are never retried here.
func (r *NewsRepository) query(ctx context.Context, operation, query string, args ...any) ([]domain.Row, error) {
	start := time.Now()

	rows, err := r.db.DB.QueryxContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQueryError(operation)
		r.logger.Error("query failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return nil, apperrors.QueryFailed(err)
	}
	defer rows.Close()

	out := []domain.Row{}
	for rows.Next() {
		row := make(domain.Row)
		if err := rows.MapScan(row); err != nil {
			metrics.RecordDBQueryError(operation)
			return nil, apperrors.QueryFailed(err)
		}
		// The MySQL driver hands text columns back as []byte.
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordDBQueryError(operation)
		return nil, apperrors.QueryFailed(err)
	}

	metrics.RecordDBQuery(operation, time.Since(start))
	return out, nil
}

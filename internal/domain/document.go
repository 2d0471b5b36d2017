package domain

// Row is one query result row, keyed by column name. The column set varies
// per symbol table and is never assumed fixed.
type Row map[string]any

// ColumnMetadata describes one column of a symbol table, in ordinal order.
// Immutable once cached.
type ColumnMetadata struct {
	Name     string `db:"column_name" json:"name"`
	DataType string `db:"data_type" json:"data_type"`
}

// Document is the externally visible read unit for a single row.
type Document struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	URL      string         `json:"url"`
	Metadata map[string]any `json:"metadata"`
}

// SearchResult is the trimmed document shape returned by cross-table search.
type SearchResult struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	URL    string  `json:"url"`
	Text   string  `json:"text"`
	Symbol string  `json:"symbol"`
	Date   *string `json:"date"`
}

package dto

import (
	"encoding/json"

	"github.com/tickerwire/tickerwire/internal/domain"
)

// ToolCallRequest is the generic tool invocation envelope
type ToolCallRequest struct {
	Name      string          `json:"name" validate:"required"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ListSymbolsArgs are the arguments for the list_symbols tool
type ListSymbolsArgs struct {
	Limit *int `json:"limit,omitempty"`
}

// SymbolNewsArgs are the arguments for the get_symbol_news tool
type SymbolNewsArgs struct {
	Symbol   string `json:"symbol" validate:"required"`
	DateFrom string `json:"date_from,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// SearchArgs are the arguments for the search tool. A blank query is legal
// and yields no results.
type SearchArgs struct {
	Query    string   `json:"query"`
	Symbols  []string `json:"symbols,omitempty"`
	DateFrom string   `json:"date_from,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// FetchArgs are the arguments for the fetch tool
type FetchArgs struct {
	ID string `json:"id" validate:"required"`
}

// SymbolsResponse lists the discovered symbol inventory
type SymbolsResponse struct {
	Symbols []string `json:"symbols"`
	Count   int      `json:"count"`
}

// SymbolNewsResponse carries the rows read from one symbol table
type SymbolNewsResponse struct {
	Symbol string       `json:"symbol"`
	Count  int          `json:"count"`
	Rows   []domain.Row `json:"rows"`
}

// SearchResponse carries cross-symbol search matches
type SearchResponse struct {
	Results []domain.SearchResult `json:"results"`
}

// ToolInfo describes one callable tool for discovery
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolsResponse lists the callable tools
type ToolsResponse struct {
	Tools []ToolInfo `json:"tools"`
}

// NewSymbolsResponse shapes a symbol inventory response
func NewSymbolsResponse(symbols []string) SymbolsResponse {
	if symbols == nil {
		symbols = []string{}
	}
	return SymbolsResponse{Symbols: symbols, Count: len(symbols)}
}

// NewSymbolNewsResponse shapes a symbol news response. The canonical symbol
// comes from the augmented rows when any matched.
func NewSymbolNewsResponse(requested string, rows []domain.Row) SymbolNewsResponse {
	if rows == nil {
		rows = []domain.Row{}
	}
	symbol := requested
	if len(rows) > 0 {
		if canonical, ok := rows[0]["symbol"].(string); ok {
			symbol = canonical
		}
	}
	return SymbolNewsResponse{Symbol: symbol, Count: len(rows), Rows: rows}
}

// NewSearchResponse shapes a search response
func NewSearchResponse(results []domain.SearchResult) SearchResponse {
	if results == nil {
		results = []domain.SearchResult{}
	}
	return SearchResponse{Results: results}
}

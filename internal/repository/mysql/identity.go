package mysql

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/tickerwire/tickerwire/internal/domain"
)

// bodyColumns are probed, in order, for the concatenated document body after
// the title. Each inner pair is one logical field with its case variants;
// only the first non-empty variant of a pair contributes.
var bodyColumns = [][]string{
	{"summary", "Summary"},
	{"description", "Description"},
	{"content", "Content"},
	{"body", "Body"},
}

// snippetMaxLen bounds search snippets; longer text is cut to 397 runes plus
// an ellipsis marker.
const snippetMaxLen = 400

// documentID derives the stable external id for a row. primaryKey is the
// symbol's key column or "" for keyless tables.
//
// With a key and a non-null value the id is "<symbol>:<value>". Otherwise it
// falls back to "<symbol>:" plus the first 16 hex chars of
// SHA1("<symbol>|<title>|<row date field>"). The fallback deliberately reads
// the literal "date" key rather than the symbol's resolved date column, and
// it is not unique across rows sharing symbol, title, and date; both are
// accepted, documented behavior.
func documentID(symbol, primaryKey string, row domain.Row) string {
	if primaryKey != "" {
		if value, ok := row[primaryKey]; ok && value != nil {
			return fmt.Sprintf("%s:%s", symbol, stringValue(value))
		}
	}

	digestInput := fmt.Sprintf("%s|%s|%s", symbol, extractTitle(row), stringValue(row["date"]))
	digest := sha1.Sum([]byte(digestInput))
	return fmt.Sprintf("%s:%s", symbol, hex.EncodeToString(digest[:])[:16])
}

// extractTitle probes the preferred title-like columns and returns the first
// non-empty value, or ""
func extractTitle(row domain.Row) string {
	for _, candidate := range preferredTextColumns {
		if value := stringValue(row[candidate]); value != "" {
			return value
		}
	}
	return ""
}

// extractBody concatenates the title and the first non-empty value of each
// body column, separated by blank lines. Falls back to the row's string form
// when nothing matches.
func extractBody(row domain.Row) string {
	var parts []string
	if title := extractTitle(row); title != "" {
		parts = append(parts, title)
	}
	for _, variants := range bodyColumns {
		for _, candidate := range variants {
			if value := stringValue(row[candidate]); value != "" {
				parts = append(parts, value)
				break
			}
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%v", map[string]any(row))
	}
	return strings.Join(parts, "\n\n")
}

// snippet truncates body text for search results
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetMaxLen {
		return text
	}
	return string(runes[:snippetMaxLen-3]) + "..."
}

// stringValue renders a scalar row value for ids, titles, and snippets.
// nil renders as "" so absent and NULL columns behave alike.
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}

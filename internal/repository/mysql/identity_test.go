package mysql

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/internal/domain"
)

func TestDocumentID(t *testing.T) {
	t.Run("uses primary key value when present", func(t *testing.T) {
		row := domain.Row{"id": int64(123), "Title": "Apple beats estimates"}
		assert.Equal(t, "AAPL:123", documentID("AAPL", "id", row))
	})

	t.Run("falls back to hash when key value is null", func(t *testing.T) {
		row := domain.Row{"id": nil, "Title": "Apple beats estimates", "date": "2024-01-05"}
		id := documentID("AAPL", "id", row)
		require.True(t, strings.HasPrefix(id, "AAPL:"))
		assert.Len(t, strings.TrimPrefix(id, "AAPL:"), 16)
	})

	t.Run("falls back to hash for keyless tables", func(t *testing.T) {
		row := domain.Row{"Title": "Some headline", "date": "2024-01-05"}
		id := documentID("MSFT", "", row)
		require.True(t, strings.HasPrefix(id, "MSFT:"))
		assert.Len(t, strings.TrimPrefix(id, "MSFT:"), 16)
	})

	t.Run("is deterministic", func(t *testing.T) {
		row := domain.Row{"Title": "Some headline", "date": "2024-01-05"}
		assert.Equal(t, documentID("MSFT", "", row), documentID("MSFT", "", row))
	})

	t.Run("collides for rows sharing symbol title and date", func(t *testing.T) {
		// Known limitation of the hash fallback: the digest keys only on
		// symbol, title, and the literal "date" field, so distinct rows that
		// agree on all three share one id.
		a := domain.Row{"Title": "Duplicate headline", "date": "2024-01-05", "extra": "one"}
		b := domain.Row{"Title": "Duplicate headline", "date": "2024-01-05", "extra": "two"}
		assert.Equal(t, documentID("MSFT", "", a), documentID("MSFT", "", b))
	})

	t.Run("hash reads the literal date key not the resolved date column", func(t *testing.T) {
		withDate := domain.Row{"Title": "Headline", "published_at": "2024-01-05"}
		withoutDate := domain.Row{"Title": "Headline"}
		// published_at is a recognized date column elsewhere, but the digest
		// ignores it; both rows hash identically.
		assert.Equal(t, documentID("MSFT", "", withDate), documentID("MSFT", "", withoutDate))
	})
}

func TestExtractTitle(t *testing.T) {
	t.Run("probes preferred names in priority order", func(t *testing.T) {
		row := domain.Row{
			"summary": "a summary",
			"Title":   "the title",
		}
		assert.Equal(t, "the title", extractTitle(row))
	})

	t.Run("skips empty values", func(t *testing.T) {
		row := domain.Row{"Title": "", "headline": "the headline"}
		assert.Equal(t, "the headline", extractTitle(row))
	})

	t.Run("returns empty when nothing matches", func(t *testing.T) {
		row := domain.Row{"ticker": "AAPL", "price": 123.45}
		assert.Equal(t, "", extractTitle(row))
	})

	t.Run("renders byte slices as text", func(t *testing.T) {
		row := domain.Row{"Title": []byte("driver bytes")}
		assert.Equal(t, "driver bytes", extractTitle(row))
	})
}

func TestExtractBody(t *testing.T) {
	t.Run("joins title and body fields with blank lines", func(t *testing.T) {
		row := domain.Row{
			"Title":   "the title",
			"summary": "a summary",
			"content": "the content",
		}
		assert.Equal(t, "the title\n\na summary\n\nthe content", extractBody(row))
	})

	t.Run("takes one case variant per body field", func(t *testing.T) {
		row := domain.Row{
			"Title":   "the title",
			"summary": "lower summary",
			"Summary": "upper summary",
		}
		assert.Equal(t, "the title\n\nlower summary", extractBody(row))
	})

	t.Run("falls back to row rendering when nothing matches", func(t *testing.T) {
		row := domain.Row{"ticker": "AAPL"}
		body := extractBody(row)
		assert.Contains(t, body, "ticker")
		assert.Contains(t, body, "AAPL")
	})
}

func TestSnippet(t *testing.T) {
	t.Run("short text passes through", func(t *testing.T) {
		assert.Equal(t, "short", snippet("short"))
	})

	t.Run("exactly max length passes through", func(t *testing.T) {
		text := strings.Repeat("x", snippetMaxLen)
		assert.Equal(t, text, snippet(text))
	})

	t.Run("long text truncates with ellipsis marker", func(t *testing.T) {
		text := strings.Repeat("x", snippetMaxLen+1)
		got := snippet(text)
		assert.Len(t, got, snippetMaxLen)
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}

func TestStringValue(t *testing.T) {
	assert.Equal(t, "", stringValue(nil))
	assert.Equal(t, "text", stringValue("text"))
	assert.Equal(t, "bytes", stringValue([]byte("bytes")))
	assert.Equal(t, "42", stringValue(int64(42)))

	ts := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-05 00:00:00", stringValue(ts))
}

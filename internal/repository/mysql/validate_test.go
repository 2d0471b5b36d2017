package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
)

func TestSafeLimit(t *testing.T) {
	t.Run("rejects zero", func(t *testing.T) {
		_, err := safeLimit(0, 200)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidLimit))
	})

	t.Run("rejects negative", func(t *testing.T) {
		_, err := safeLimit(-5, 200)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidLimit))
	})

	t.Run("passes limits within the cap", func(t *testing.T) {
		limit, err := safeLimit(50, 200)
		require.NoError(t, err)
		assert.Equal(t, 50, limit)
	})

	t.Run("clamps to the configured maximum", func(t *testing.T) {
		limit, err := safeLimit(10000, 200)
		require.NoError(t, err)
		assert.Equal(t, 200, limit)
	})
}

func TestValidateDate(t *testing.T) {
	t.Run("accepts YYYY-MM-DD", func(t *testing.T) {
		assert.NoError(t, validateDate("2024-01-05"))
	})

	t.Run("rejects other formats", func(t *testing.T) {
		for _, value := range []string{"2024/01/05", "05-01-2024", "2024-1-5", "yesterday", ""} {
			err := validateDate(value)
			require.Error(t, err, "value %q", value)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidDateFormat))
		}
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		err := validateDate("2024-02-31")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidDateFormat))
	})
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`AAPL`", quoteIdentifier("AAPL"))
	assert.Equal(t, "`published_at`", quoteIdentifier("published_at"))
	// Embedded backticks double rather than terminate the quote.
	assert.Equal(t, "`we``ird`", quoteIdentifier("we`ird"))
}

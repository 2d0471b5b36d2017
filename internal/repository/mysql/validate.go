package mysql

import (
	"strings"
	"time"

	apperrors "github.com/tickerwire/tickerwire/internal/pkg/errors"
)

const dateLayout = "2006-01-02"

// validateDate checks a YYYY-MM-DD date string
func validateDate(value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return apperrors.InvalidDateFormat(value)
	}
	return nil
}

// safeLimit rejects non-positive limits and clamps the rest to maxRows
func safeLimit(requested, maxRows int) (int, error) {
	if requested <= 0 {
		return 0, apperrors.InvalidLimit(requested)
	}
	if requested > maxRows {
		return maxRows, nil
	}
	return requested, nil
}

// quoteIdentifier backtick-quotes a validated identifier for MySQL SQL text.
// Identifiers cannot be parameter-bound; callers must resolve the name against
// the schema cache before quoting.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

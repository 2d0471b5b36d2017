// Package errors provides application error types for TickerWire.
//
// This package defines:
//   - AppError type with error classification
//   - Error constructors for common error types
//   - Error type checking helpers
//   - HTTP status code mapping
//
// # Error Types
//
//   - UnknownSymbol: symbol matches no discovered table (404)
//   - InvalidDateFormat / InvalidLimit / MalformedID: invalid input (400)
//   - NoPrimaryKey: fetch against a keyless table (422)
//   - NotFound: row does not exist (404)
//   - MetadataUnavailable: schema discovery failed (503)
//   - QueryFailed: data query failed (500)
//   - Internal: unexpected server error (500)
//
// # Usage
//
// Create errors using constructor functions:
//
//	return apperrors.UnknownSymbol("AAPL")
//	return apperrors.InvalidLimit(0)
//
// Check error types:
//
//	if apperrors.IsUnknownSymbol(err) {
//	    // Handle unknown symbol
//	}
//
// # Error Wrapping
//
// Errors support wrapping with fmt.Errorf:
//
//	return fmt.Errorf("search failed: %w", apperrors.QueryFailed(cause))
package errors

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeInternal            = "INTERNAL_ERROR"
	CodeValidation          = "VALIDATION_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeRateLimited         = "RATE_LIMITED"
	CodeBadRequest          = "BAD_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeUnknownSymbol       = "UNKNOWN_SYMBOL"
	CodeInvalidDateFormat   = "INVALID_DATE_FORMAT"
	CodeInvalidLimit        = "INVALID_LIMIT"
	CodeMalformedID         = "MALFORMED_ID"
	CodeNoPrimaryKey        = "NO_PRIMARY_KEY"
	CodeMetadataUnavailable = "METADATA_UNAVAILABLE"
	CodeQueryFailed         = "QUERY_FAILED"
)

// AppError represents an application error with context
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	StatusCode int               `json:"-"`
	Err        error             `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithError wraps an underlying error
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Internal creates an internal server error
func Internal(message string) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError)
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

// Forbidden creates a forbidden error
func Forbidden(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return New(CodeForbidden, message, http.StatusForbidden)
}

// RateLimited creates a rate limited error
func RateLimited() *AppError {
	return New(CodeRateLimited, "rate limit exceeded", http.StatusTooManyRequests)
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

// NotFound creates a not found error
func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// UnknownSymbol creates an error for a symbol that matches no discovered table
func UnknownSymbol(symbol string) *AppError {
	return New(CodeUnknownSymbol, fmt.Sprintf("unknown symbol table %q", symbol), http.StatusNotFound)
}

// InvalidDateFormat creates an error for a date that is not YYYY-MM-DD
func InvalidDateFormat(value string) *AppError {
	return New(CodeInvalidDateFormat, fmt.Sprintf("date %q must be in YYYY-MM-DD format", value), http.StatusBadRequest)
}

// InvalidLimit creates an error for a non-positive row limit
func InvalidLimit(limit int) *AppError {
	return New(CodeInvalidLimit, fmt.Sprintf("limit must be greater than zero, got %d", limit), http.StatusBadRequest)
}

// MalformedID creates an error for a document id that does not split into symbol and key
func MalformedID(id string) *AppError {
	return New(CodeMalformedID, fmt.Sprintf("id %q must have the form <SYMBOL>:<PRIMARY_KEY_VALUE>", id), http.StatusBadRequest)
}

// NoPrimaryKey creates an error for a fetch against a keyless table
func NoPrimaryKey(symbol string) *AppError {
	return New(CodeNoPrimaryKey,
		fmt.Sprintf("table %q has no primary key; read rows through the symbol news operation instead", symbol),
		http.StatusUnprocessableEntity)
}

// MetadataUnavailable creates an error for a failed schema discovery query
func MetadataUnavailable(err error) *AppError {
	return New(CodeMetadataUnavailable, "schema metadata discovery failed", http.StatusServiceUnavailable).WithError(err)
}

// QueryFailed creates an error for a failed data query with the cause preserved
func QueryFailed(err error) *AppError {
	return New(CodeQueryFailed, "query execution failed", http.StatusInternalServerError).WithError(err)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error if present
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// HasCode checks whether the error is an AppError with the given code
func HasCode(err error, code string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return HasCode(err, CodeUnauthorized)
}

// IsUnknownSymbol checks if the error is an unknown symbol error
func IsUnknownSymbol(err error) bool {
	return HasCode(err, CodeUnknownSymbol)
}

// IsNoPrimaryKey checks if the error is a missing primary key error
func IsNoPrimaryKey(err error) bool {
	return HasCode(err, CodeNoPrimaryKey)
}

// IsMetadataUnavailable checks if the error is a metadata discovery error
func IsMetadataUnavailable(err error) bool {
	return HasCode(err, CodeMetadataUnavailable)
}

// IsQueryFailed checks if the error is a query execution error
func IsQueryFailed(err error) bool {
	return HasCode(err, CodeQueryFailed)
}

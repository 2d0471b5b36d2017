// Package dto contains Data Transfer Objects for HTTP request/response handling.
//
// DTOs provide:
//   - Type-safe request parsing with struct tags
//   - Declarative validation using go-playground/validator
//   - Separation between API contracts and domain types
//
// Validation tags here cover only structural requirements (a field being
// present). Value checks such as limit positivity and date format stay in the
// repository so its error taxonomy surfaces unchanged.
//
// # Usage
//
// Use dto.ParseAndValidate() in handlers to parse and validate requests:
//
//	var req dto.ToolCallRequest
//	if err := dto.ParseAndValidate(c, &req); err != nil {
//	    return err
//	}
package dto

package chargebee

import (
	"encoding/json"
	"errors"
	"fmt"
)

// maxBodyPreview bounds how much of a provider response body is kept on an
// APIError for diagnostics.
const maxBodyPreview = 2000

// APIError is any non-success response from the billing provider, including
// transport failures surfaced by the HTTP client. Body holds a truncated copy
// of the raw provider payload.
type APIError struct {
	Operation string
	Status    int
	Body      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chargebee %s: status %d: %s", e.Operation, e.Status, e.Body)
}

// IsAPIError reports whether err wraps a provider APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

func newAPIError(operation string, status int, body []byte) *APIError {
	preview := string(body)
	if len(preview) > maxBodyPreview {
		preview = preview[:maxBodyPreview] + "…(truncated)"
	}
	return &APIError{Operation: operation, Status: status, Body: preview}
}

// errorBody is the provider's error payload shape. Older API versions report
// the code under error_code, newer ones under api_error_code.
type errorBody struct {
	ErrorCode    string `json:"error_code"`
	APIErrorCode string `json:"api_error_code"`
}

// isNotFound reports the provider's resource-not-found signal: a 404 status
// paired with the resource_not_found error code.
func isNotFound(status int, body []byte) bool {
	if status != 404 {
		return false
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return false
	}
	return eb.ErrorCode == "resource_not_found" || eb.APIErrorCode == "resource_not_found"
}

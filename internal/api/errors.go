package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured non-2xx response from the admin API. Code carries
// the machine-readable identifier (e.g. "SLUG_EXISTS") that form controllers
// map back onto fields.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (%d %s)", e.Message, e.Status, e.Code)
	}
	if e.Code != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// IsAuthError reports whether err means the credential is missing, expired
// or insufficient. These are not recoverable inline: the operator has to
// re-authenticate.
func IsAuthError(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// ErrorCode extracts the machine-readable code from err, or "".
func ErrorCode(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

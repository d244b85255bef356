package qb

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError represents a non-success response from the records API.
type APIError struct {
	StatusCode  int    `json:"statusCode"            yaml:"statusCode"`
	Message     string `json:"message"               yaml:"message"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("api request failed: %s (status: %d)", msg, e.StatusCode)
}

// AuthError represents a failed temporary-token fetch.
type AuthError struct {
	TableID string
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for table %s: %s", e.TableID, e.Message)
}

// PartialUpsertError is returned by strict upserts when the API reports
// per-line errors. LineErrors is keyed by the 1-based line number of the
// failing record, exactly as reported by the API.
type PartialUpsertError struct {
	LineErrors map[string][]string
}

// Error implements the error interface.
func (e *PartialUpsertError) Error() string {
	lines := make([]string, 0, len(e.LineErrors))
	for line := range e.LineErrors {
		lines = append(lines, line)
	}

	sort.Strings(lines)

	return fmt.Sprintf("upsert reported errors on lines [%s]", strings.Join(lines, ", "))
}

// Static errors that can be wrapped with context.
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrAmbiguousMatch  = errors.New("more than one record matched a unique-field lookup")
	ErrMalformedRecord = errors.New("malformed wire record")
	ErrConfigRequired  = errors.New("config is required")
	ErrRealmRequired   = errors.New("realm hostname is required")
)

// IsNotFound checks if the error is a record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// IsAmbiguous checks if the error is an ambiguous-match error.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousMatch)
}

// IsAuthError checks if the error is a failed token fetch.
func IsAuthError(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsAPIError checks if the error is a non-success API response and
// returns it when so.
func IsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

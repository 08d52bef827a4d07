package api

import (
	"errors"
	"fmt"
)

// Error is the typed failure for any non-2xx HTTP outcome. Transport failures
// and JSON parse failures are not wrapped in Error; callers must not assume
// every failure from the client carries a status code.
type Error struct {
	// Message is the server-provided detail when present, otherwise a
	// generic "request failed with status N".
	Message string

	// Status is the HTTP status code of the final response.
	Status int

	// Data is the parsed response body, kept for caller inspection.
	Data any
}

func (e *Error) Error() string {
	return e.Message
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an
// *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// statusError builds the Error for a failed response, pulling the message
// from the body's "detail" field, then "message", then a generic fallback.
func statusError(status int, data any) *Error {
	msg := fmt.Sprintf("request failed with status %d", status)
	if m, ok := data.(map[string]any); ok {
		if s, ok := m["detail"].(string); ok {
			msg = s
		} else if s, ok := m["message"].(string); ok {
			msg = s
		}
	}
	return &Error{Message: msg, Status: status, Data: data}
}

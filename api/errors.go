package api

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorData carries the nested detail some endpoints return inside a failure body.
type ErrorData struct {
	Message string `json:"message,omitempty"`
}

// Error is the structured failure every remote call can resolve to.
// The service returns either a top-level message or a nested data.message,
// depending on which layer produced the failure.
type Error struct {
	StatusCode int        `json:"statusCode,omitempty"`
	Message    string     `json:"message,omitempty"`
	Data       *ErrorData `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if detail := e.detail(); detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func (e *Error) detail() string {
	if e.Data != nil && e.Data.Message != "" {
		return e.Data.Message
	}
	return e.Message
}

// Detail extracts the most specific human-readable message from a failed call.
// Order: nested data.message, then top-level message, then "". Anything that is
// not an *Error (or wraps one) yields "" and the caller falls back to a generic
// message.
func Detail(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return ""
	}
	return apiErr.detail()
}

// IsUnauthorized reports whether err is a 401 from the remote service.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

package reader

import (
	"errors"
	"fmt"
)

// ErrMissingAuthToken is returned when no auth token is configured.
var ErrMissingAuthToken = errors.New("reader auth token is not configured")

// RequestError is returned for a response other than 200 OK.
type RequestError struct {
	// URI is the requested URL.
	URI string
	// StatusCode is the HTTP status of the response.
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URI, e.StatusCode)
}

// HTTPStatus returns the response status, used to decide on retries.
func (e *RequestError) HTTPStatus() int {
	return e.StatusCode
}

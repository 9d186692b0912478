package transport

import (
	"fmt"
	"net/http"
)

// StatusError is returned when the request's StatusPolicy rejects the backend
// response status.
type StatusError struct {
	URL     string
	Status  int
	Headers http.Header
	Body    []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status code %d", e.URL, e.Status)
}

// FormatError reports a payload that could not be formatted: an event that
// could not be turned into a request, which has no URL, or a failed response
// transform.
type FormatError struct {
	URL string
	Err error
}

func (e *FormatError) Error() string {
	if e.URL == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("failed transforming response from %s: %v", e.URL, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Package transport sends translated requests to the backend and classifies
// the responses.
package transport

import (
	"context"
	"net/http"
)

// Credentials are basic auth credentials applied to the outbound request.
type Credentials struct {
	Username string
	Password string
}

// StatusPolicy returns true when status is a well formed response. Any other
// status is reported as a *StatusError.
type StatusPolicy func(status int) bool

// AcceptSuccess accepts 2xx responses only.
func AcceptSuccess(status int) bool {
	return status >= 200 && status < 300
}

// AcceptBelowServerError accepts everything below 500, passing 4xx responses
// through to the caller.
func AcceptBelowServerError(status int) bool {
	return status >= 100 && status < 500
}

// Request describes one outbound call.
type Request struct {
	// URL is the target path, resolved against BaseURL. Absolute URLs are used
	// as is.
	URL     string
	Method  string
	BaseURL string
	// Headers keep the key case they were received with.
	Headers     map[string]string
	Query       map[string]string
	Credentials *Credentials
	Body        []byte
	// Transform rewrites an accepted response body before it is returned.
	Transform func([]byte) ([]byte, error)
	// Accept defaults to AcceptSuccess.
	Accept StatusPolicy
}

// Clone returns a copy of the request whose maps can be modified without
// affecting r.
func (r *Request) Clone() *Request {
	c := *r

	c.Headers = make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		c.Headers[k] = v
	}

	c.Query = make(map[string]string, len(r.Query))
	for k, v := range r.Query {
		c.Query[k] = v
	}

	if r.Credentials != nil {
		creds := *r.Credentials
		c.Credentials = &creds
	}

	return &c
}

// Response is a well formed backend response.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// Transport sends a request and returns the accepted response, or an error for
// network faults, rejected statuses and transform failures.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

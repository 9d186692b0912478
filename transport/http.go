package transport

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/prognoshealth/apigwtranslator/logging"
)

// Config holds the backend connection settings.
type Config struct {
	// BaseURL is used when a request carries no BaseURL.
	BaseURL         string `json:"base_url" toml:"base_url" validate:"omitempty,url"`
	TimeoutSeconds  int    `json:"timeout_seconds" toml:"timeout_seconds" validate:"gte=0"`
	IdleConnections int    `json:"idle_connections" toml:"idle_connections" validate:"gte=0"`
}

// headers the http client derives itself; forwarding the inbound values would
// duplicate or contradict them. Accept-Encoding is left to net/http so gzip
// responses are decompressed before they are read.
var skippedHeaders = map[string]bool{
	"Host":              true,
	"Content-Length":    true,
	"Transfer-Encoding": true,
	"Connection":        true,
	"Accept-Encoding":   true,
}

// HTTPTransport is a Transport backed by net/http.
type HTTPTransport struct {
	client  *http.Client
	baseURL string
	logger  logging.ServiceLogger
}

// NewHTTPTransport returns an HTTPTransport for cfg. Zero values fall back to
// a 30 second timeout and 10 idle connections.
func NewHTTPTransport(cfg Config, logger logging.ServiceLogger) *HTTPTransport {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	idle := cfg.IdleConnections
	if idle == 0 {
		idle = 10
	}

	return NewHTTPTransportWithClient(&http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        idle,
			MaxIdleConnsPerHost: idle,
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}, cfg.BaseURL, logger)
}

// NewHTTPTransportWithClient returns an HTTPTransport using client.
func NewHTTPTransportWithClient(client *http.Client, baseURL string, logger logging.ServiceLogger) *HTTPTransport {
	return &HTTPTransport{
		client:  client,
		baseURL: baseURL,
		logger:  logger.With(map[string]string{"component": "transport"}),
	}
}

// Do sends req and reads the full response body.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := t.resolve(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := t.build(ctx, req, target)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Debug().Err(err).Str("method", httpReq.Method).Str("url", target).Msg("backend request failed")
		return nil, errors.Wrapf(err, "request to %s failed", target)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading response from %s", target)
	}

	t.logger.Debug().
		Str("method", httpReq.Method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("backend response")

	accept := req.Accept
	if accept == nil {
		accept = AcceptSuccess
	}

	if !accept(resp.StatusCode) {
		return nil, &StatusError{URL: target, Status: resp.StatusCode, Headers: resp.Header, Body: body}
	}

	if req.Transform != nil {
		body, err = req.Transform(body)
		if err != nil {
			return nil, &FormatError{URL: target, Err: err}
		}
	}

	return &Response{Status: resp.StatusCode, Headers: resp.Header, Body: body}, nil
}

// resolve joins the request path onto the base url and appends the query.
func (t *HTTPTransport) resolve(req *Request) (string, error) {
	target := req.URL

	if !isAbsolute(target) {
		base := req.BaseURL
		if base == "" {
			base = t.baseURL
		}
		if base == "" {
			return "", errors.Errorf("no base url available for '%s'", req.URL)
		}

		target = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(target, "/")
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", errors.Wrapf(err, "invalid request url '%s'", target)
	}

	if len(req.Query) > 0 {
		q := u.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

func (t *HTTPTransport) build(ctx context.Context, req *Request, target string) (*http.Request, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(req.Method), target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed building request for %s", target)
	}

	for k, v := range req.Headers {
		canonical := http.CanonicalHeaderKey(k)
		if skippedHeaders[canonical] {
			continue
		}
		if req.Credentials != nil && canonical == "Authorization" {
			continue
		}
		if canonical == "User-Agent" {
			httpReq.Header.Set(canonical, v)
			continue
		}
		httpReq.Header[k] = []string{v}
	}

	if req.Credentials != nil {
		httpReq.SetBasicAuth(req.Credentials.Username, req.Credentials.Password)
	}

	return httpReq, nil
}

func isAbsolute(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

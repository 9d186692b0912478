package translator

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/prognoshealth/apigwtranslator/transport"
)

func TestSerializeBody(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{"", `""`},
		{`{ "a": 1,  "b": [1, 2] }`, `{"a":1,"b":[1,2]}`},
		{"[1, 2]\n", `[1,2]`},
		{`"quoted"`, `"quoted"`},
		{`42`, `42`},
		{`plain text`, `"plain text"`},
		{`<p>a & b</p>`, `"<p>a & b</p>"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, serializeBody([]byte(tt.body)), "body %q", tt.body)
	}
}

func TestFlattenHeaders(t *testing.T) {
	assert.Nil(t, flattenHeaders(nil))

	flat := flattenHeaders(http.Header{
		"Content-Type": {"application/json"},
		"Set-Cookie":   {"a=1", "b=2"},
	})

	assert.Equal(t, map[string]string{"Content-Type": "application/json", "Set-Cookie": "a=1, b=2"}, flat)
}

func TestFlattenHeaders_stale(t *testing.T) {
	flat := flattenHeaders(http.Header{
		"Content-Length":    {"55"},
		"Content-Encoding":  {"gzip"},
		"Transfer-Encoding": {"chunked"},
		"Connection":        {"keep-alive"},
		"Keep-Alive":        {"timeout=5"},
		"Te":                {"trailers"},
		"Trailer":           {"Expires"},
		"Upgrade":           {"h2c"},
		"Content-Type":      {"application/json"},
	})

	assert.Equal(t, map[string]string{"Content-Type": "application/json"}, flat)

	assert.Nil(t, flattenHeaders(http.Header{"Content-Length": {"0"}}))
}

func TestSuccessResponse(t *testing.T) {
	response := successResponse(&transport.Response{
		Status:  http.StatusAccepted,
		Headers: http.Header{"X-Request-Id": {"abc"}},
		Body:    []byte(`{"queued": true}`),
	})

	assert.Equal(t, http.StatusAccepted, response.StatusCode)
	assert.Equal(t, map[string]string{"X-Request-Id": "abc"}, response.Headers)
	assert.Equal(t, `{"queued":true}`, response.Body)
}

func TestFailureResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "transport",
			err:      errors.New("dial tcp: connection refused"),
			expected: `{"name":"TransportError","message":"dial tcp: connection refused"}`,
		},
		{
			name:     "status",
			err:      &transport.StatusError{URL: "http://b/orders", Status: 503},
			expected: `{"name":"StatusError","message":"request to http://b/orders failed with status code 503","status":503}`,
		},
		{
			name:     "transform",
			err:      &transport.FormatError{URL: "http://b/orders", Err: errors.New("bad json")},
			expected: `{"name":"FormattingError","message":"failed transforming response from http://b/orders: bad json"}`,
		},
		{
			name:     "build",
			err:      &transport.FormatError{Err: errors.New("unsupported http method 'TRACE'")},
			expected: `{"name":"FormattingError","message":"unsupported http method 'TRACE'"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := FailureResponse(tt.err)

			assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
			assert.Equal(t, map[string]string{"Content-Type": "application/json"}, response.Headers)
			assert.Equal(t, tt.expected, response.Body)
		})
	}
}

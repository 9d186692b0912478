package translator

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/prognoshealth/apigwtranslator/transport"
)

// ErrorBody is the serialized body of a failure response.
type ErrorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

const (
	errNameTransport  = "TransportError"
	errNameStatus     = "StatusError"
	errNameFormatting = "FormattingError"
)

func successResponse(resp *transport.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.Status,
		Headers:    flattenHeaders(resp.Headers),
		Body:       serializeBody(resp.Body),
	}
}

// FailureResponse maps err to a 500 response whose body names the failure
// kind: StatusError, FormattingError or TransportError.
func FailureResponse(err error) events.APIGatewayProxyResponse {
	body := ErrorBody{Name: errNameTransport, Message: err.Error()}

	var statusErr *transport.StatusError
	var formatErr *transport.FormatError

	switch {
	case errors.As(err, &statusErr):
		body.Name = errNameStatus
		body.Status = statusErr.Status
	case errors.As(err, &formatErr):
		body.Name = errNameFormatting
	}

	b, _ := marshal(body)

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}

// serializeBody returns the body as a JSON value: JSON bodies compacted, any
// other text as a JSON string.
func serializeBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && json.Valid(trimmed) {
		buf := &bytes.Buffer{}
		if err := json.Compact(buf, trimmed); err == nil {
			return buf.String()
		}
	}

	b, _ := marshal(string(body))
	return string(b)
}

// staleHeaders describe the backend's wire encoding of a body the translator
// has since rewritten, or only apply to the backend connection.
var staleHeaders = map[string]bool{
	"Content-Length":    true,
	"Content-Encoding":  true,
	"Transfer-Encoding": true,
	"Connection":        true,
	"Keep-Alive":        true,
	"Proxy-Connection":  true,
	"Te":                true,
	"Trailer":           true,
	"Upgrade":           true,
}

func flattenHeaders(h http.Header) map[string]string {
	flat := make(map[string]string, len(h))
	for k, v := range h {
		if staleHeaders[http.CanonicalHeaderKey(k)] {
			continue
		}
		flat[k] = strings.Join(v, ", ")
	}

	if len(flat) == 0 {
		return nil
	}

	return flat
}

func marshal(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"github.com/prognoshealth/apigwtranslator/logging"
	"github.com/prognoshealth/apigwtranslator/proxy"
	"github.com/prognoshealth/apigwtranslator/transport"
)

func testEvent(method string, path string) proxy.Event {
	return proxy.Event{
		APIGatewayProxyRequest: events.APIGatewayProxyRequest{
			HTTPMethod: method,
			Path:       path,
			Headers:    map[string]string{},
		},
		OperationContext: &proxy.OperationContext{},
	}
}

func dummyEvent(t *testing.T, category string) proxy.Event {
	content, err := os.ReadFile(fmt.Sprintf("testdata/events/%s.json", category))
	require.NoError(t, err)

	event := proxy.Event{}
	require.NoError(t, json.Unmarshal(content, &event))

	return event
}

func newTestTranslator(t *testing.T, cfg Config, tr transport.Transport) *Translator {
	translator, err := New(cfg, tr, logging.Nop())
	require.NoError(t, err)

	return translator
}

// backendRequest is what the test backend saw.
type backendRequest struct {
	*http.Request
	body []byte
}

func testBackend(t *testing.T, status int, body string) (*httptest.Server, *[]backendRequest) {
	seen := &[]backendRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		*seen = append(*seen, backendRequest{Request: r, body: b})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, seen
}

type fakeResult struct {
	resp *transport.Response
	err  error
}

// fakeTransport replays results in order and records every request.
type fakeTransport struct {
	results  []fakeResult
	requests []*transport.Request
}

func (f *fakeTransport) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	f.requests = append(f.requests, req.Clone())

	r := f.results[len(f.requests)-1]
	return r.resp, r.err
}

func okResponse(body string) fakeResult {
	return fakeResult{resp: &transport.Response{Status: http.StatusOK, Body: []byte(body)}}
}

func decodeErrorBody(t *testing.T, response events.APIGatewayProxyResponse) ErrorBody {
	body := ErrorBody{}
	require.NoError(t, json.Unmarshal([]byte(response.Body), &body))

	return body
}

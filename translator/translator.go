// Package translator turns api gateway proxy events into backend requests and
// maps the backend outcome back into the gateway response shape.
package translator

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/prognoshealth/apigwtranslator/formdata"
	"github.com/prognoshealth/apigwtranslator/logging"
	"github.com/prognoshealth/apigwtranslator/projection"
	"github.com/prognoshealth/apigwtranslator/proxy"
	"github.com/prognoshealth/apigwtranslator/transport"
)

// Translator runs one configured pipeline. It holds no per event state and is
// safe for concurrent use.
type Translator struct {
	cfg       Config
	transport transport.Transport
	logger    logging.ServiceLogger
}

// New returns a Translator for cfg sending requests through t.
func New(cfg Config, t transport.Transport, logger logging.ServiceLogger) (*Translator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Translator{
		cfg:       cfg,
		transport: t,
		logger:    logger.With(map[string]string{"component": "translator"}),
	}, nil
}

// Handler adapts the translator to a proxy route.
func (t *Translator) Handler() proxy.RouteHandler {
	return func(rctx *proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
		return t.Translate(rctx.Context, rctx.Event), nil
	}
}

// Handle adapts the translator to a router catch all.
func (t *Translator) Handle(ctx context.Context, event proxy.Event) (events.APIGatewayProxyResponse, error) {
	return t.Translate(ctx, event), nil
}

// Translate sends the request described by event and returns the gateway
// response. Every failure is mapped to a 500 response; Translate never fails.
func (t *Translator) Translate(ctx context.Context, event proxy.Event) events.APIGatewayProxyResponse {
	logger := t.logger.With(map[string]string{
		"method":     event.HTTPMethod,
		"path":       event.Path,
		"request_id": event.RequestContext.RequestID,
	})

	req, err := t.Build(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed building backend request")
		return FailureResponse(err)
	}

	resp, err := t.transport.Do(ctx, req)
	if err == nil && t.cfg.Retry != nil {
		resp, err = t.cfg.Retry.Apply(ctx, t.transport, req, resp, logger)
	}

	if err != nil {
		logger.Error().Err(err).Msg("backend request failed")
		return FailureResponse(err)
	}

	logger.Debug().Int("status", resp.Status).Msg("backend request complete")

	return successResponse(resp)
}

// Build derives the outbound request from event without sending it.
func (t *Translator) Build(event proxy.Event) (*transport.Request, error) {
	method, err := proxy.ParseHttpMethod(event.HTTPMethod)
	if err != nil {
		return nil, &transport.FormatError{Err: err}
	}

	oc := event.OperationContext
	if oc == nil {
		oc = &proxy.OperationContext{}
	}

	req := &transport.Request{
		URL:     event.Path,
		Method:  method.String(),
		BaseURL: oc.Host,
		Headers: copyHeaders(event.Headers, event.MultiValueHeaders),
		Accept:  t.cfg.statusPolicy(),
	}

	InjectAuth(req, oc.Auth)

	req.Query = MapQuery(event.QueryStringParameters, event.MultiValueQueryStringParameters)

	body, err := event.DecodedBody()
	if err != nil {
		return nil, &transport.FormatError{Err: err}
	}

	if len(body) > 0 {
		contentType := event.Header("Content-Type")

		if formdata.IsMultipart(contentType) {
			if err := t.encodeMultipart(req, body, contentType); err != nil {
				return nil, &transport.FormatError{Err: err}
			}
		} else {
			req.Body = body
		}
	}

	if oc.Include != nil {
		include := oc.Include
		req.Transform = func(b []byte) ([]byte, error) {
			return projection.Project(b, include)
		}
	}

	return req, nil
}

func (t *Translator) encodeMultipart(req *transport.Request, body []byte, contentType string) error {
	boundary, err := formdata.Boundary(contentType)
	if err != nil {
		return err
	}

	parts, err := formdata.Decode(body, boundary)
	if err != nil {
		return err
	}

	encoded, err := formdata.Encode(parts, t.cfg.Multipart)
	if err != nil {
		return err
	}

	outboundType, payload, err := encoded.Marshal()
	if err != nil {
		return errors.Wrap(err, "failed encoding multipart body")
	}

	t.logger.Debug().
		Str("representation", string(encoded.Representation)).
		Int("files", len(encoded.Files())).
		Int("fields", len(encoded.Fields())).
		Msg("re-encoded multipart body")

	setHeader(req.Headers, "Content-Type", outboundType)
	req.Body = payload

	return nil
}

// Package gateway wires settings into a router of translators and exposes the
// lambda handler.
package gateway

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/prognoshealth/apigwtranslator/config"
	"github.com/prognoshealth/apigwtranslator/lambdautils"
	"github.com/prognoshealth/apigwtranslator/logging"
	"github.com/prognoshealth/apigwtranslator/proxy"
	"github.com/prognoshealth/apigwtranslator/transport"
	"github.com/prognoshealth/apigwtranslator/translator"
)

// Gateway routes each event to the translator configured for its method and
// path. Events matching no route use the default pipeline.
type Gateway struct {
	router *proxy.Router
	logger logging.ServiceLogger
}

// New builds a Gateway for settings sending requests through t.
func New(settings config.Settings, t transport.Transport, logger logging.ServiceLogger) (*Gateway, error) {
	router := &proxy.Router{}

	for _, route := range settings.Routes {
		tr, err := translator.New(route.Pipeline, t, logger)
		if err != nil {
			router.AddBuildError(errors.Wrapf(err, "failed building pipeline for '%s'", route.Pattern))
			continue
		}

		for _, method := range route.Methods {
			router.Handle(method, route.Pattern, tr.Handler())
		}
	}

	fallback, err := translator.New(settings.Default, t, logger)
	if err != nil {
		router.AddBuildError(errors.Wrap(err, "failed building default pipeline"))
	} else {
		router.AddCatchAllHandler(fallback.Handle)
	}

	if !router.Valid() {
		return nil, router.BuildErrors()
	}

	g := &Gateway{router: router, logger: logger}
	router.AddErrorHandler(g.handleError)

	return g, nil
}

// NewFromSettings builds a Gateway with an HTTPTransport for the settings'
// transport config.
func NewFromSettings(settings config.Settings, logger logging.ServiceLogger) (*Gateway, error) {
	return New(settings, transport.NewHTTPTransport(settings.Transport, logger), logger)
}

// Invoke is the lambda handler. It decodes the event itself so a malformed
// event or operation context still gets a FormattingError response instead of
// failing the invocation.
func (g *Gateway) Invoke(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
	event := proxy.Event{}
	if err := json.Unmarshal(payload, &event); err != nil {
		g.logger.With(lambdautils.GetLambdaMetaData(ctx).Fields()).Error().Err(err).Msg("failed decoding event")
		return translator.FailureResponse(&transport.FormatError{Err: errors.Wrap(err, "failed decoding event")}), nil
	}

	return g.Handle(ctx, event)
}

// Handle translates a decoded event. The event's request id is set to a new uuid
// when the gateway supplied none.
func (g *Gateway) Handle(ctx context.Context, event proxy.Event) (events.APIGatewayProxyResponse, error) {
	if event.RequestContext.RequestID == "" {
		event.RequestContext.RequestID = uuid.NewString()
	}

	logger := g.logger.With(lambdautils.GetLambdaMetaData(ctx).Fields()).With(map[string]string{
		"request_id": event.RequestContext.RequestID,
	})

	logger.Info().Str("method", event.HTTPMethod).Str("path", event.Path).Msg("translating event")

	response, err := g.router.Route(ctx, event)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	logger.Info().Int("status", response.StatusCode).Msg("translated event")

	return response, nil
}

func (g *Gateway) handleError(ctx context.Context, event proxy.Event, err error) (events.APIGatewayProxyResponse, error) {
	g.logger.Error().Err(err).
		Str("request_id", event.RequestContext.RequestID).
		Msg("route failed")

	return translator.FailureResponse(err), nil
}

// Package proxy provides the api gateway (rest) proxy event model used by the
// translator and a small router that selects a handler per method and path.
// Events are processed through the lambda as proxy.Event and answered with
// events.APIGatewayProxyResponse.
//
// The router is designed to be as simplistic as possible and is not feature
// rich.
package proxy

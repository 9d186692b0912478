package proxy

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// ErrorHandler defines the function interface the router uses to handle any
// error that occurs while processing routes.
type ErrorHandler func(context.Context, Event, error) (events.APIGatewayProxyResponse, error)

// CatchAllHandler defines the function interface the router uses to handle any
// event that doesn't match a route.
type CatchAllHandler func(context.Context, Event) (events.APIGatewayProxyResponse, error)

// Router will route an incoming Event to the appropriate route based upon the
// router configuration and then return the events.APIGatewayProxyResponse.
//
// Route matching is a simple process that loops through all routes added in the
// order they were added and checks if a match is present. If so that route gets
// executed, otherwise it moves onto the next route for comparison.
//
// If the CatchAll handler is set any event that doesn't match a route will be
// handled by it.
//
// If the CatchError handler is set any route that returns an error will first
// be passed into the handler for additional processing.
//
// Example:
//
//	func handler(ctx context.Context, event proxy.Event) (events.APIGatewayProxyResponse, error) {
//		router := &proxy.Router{}
//		router.POST("/uploads", uploads.Handler())
//		router.AddCatchAllHandler(fallback.Handle)
//
//		if !router.Valid() {
//			return events.APIGatewayProxyResponse{}, router.BuildErrors()
//		}
//
//		return router.Route(ctx, event)
//	}
type Router struct {
	Routes     []*Route
	CatchAll   CatchAllHandler
	CatchError ErrorHandler

	errors []error
}

// Valid returns true if the routers' routes have all been built successfully.
// Otherwise false.
func (router *Router) Valid() bool {
	return len(router.errors) == 0
}

// AddRoute appends route to the list of routes used for event matching.
func (router *Router) AddRoute(route *Route) {
	router.Routes = append(router.Routes, route)
}

// AddBuildError appends an error to the list of router errors.
func (router *Router) AddBuildError(err error) {
	router.errors = append(router.errors, err)
}

// BuildErrors returns a single error that encapsulates all the route errors
// found during router construction.
func (router *Router) BuildErrors() error {
	topError := errors.New("failed building router")

	for _, err := range router.errors {
		topError = errors.Wrap(topError, err.Error())
	}

	return topError
}

// AddRouteIfNoError appends the provided route if no error is present.
// Otherwise it adds the error to the build errors.
func (router *Router) AddRouteIfNoError(route *Route, err error) {
	if err != nil {
		router.AddBuildError(err)
	} else {
		router.AddRoute(route)
	}
}

// Handle adds a new route for the named method with the specified pattern
// match and handler. Unknown method names are recorded as build errors.
func (router *Router) Handle(method string, match string, handler RouteHandler) {
	m, err := ParseHttpMethod(method)
	if err != nil {
		router.AddBuildError(errors.Wrapf(err, "failed adding route '%s'", match))
		return
	}

	router.AddRouteIfNoError(NewRoute(m, match, handler))
}

// GET adds a new GET route with the specified pattern match and handler.
func (router *Router) GET(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(GET, match, handler))
}

// HEAD adds a new HEAD route with the specified pattern match and handler.
func (router *Router) HEAD(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(HEAD, match, handler))
}

// POST adds a new POST route with the specified pattern match and handler.
func (router *Router) POST(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(POST, match, handler))
}

// PUT adds a new PUT route with the specified pattern match and handler.
func (router *Router) PUT(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(PUT, match, handler))
}

// DELETE adds a new DELETE route with the specified pattern match and handler.
func (router *Router) DELETE(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(DELETE, match, handler))
}

// OPTIONS adds a new OPTIONS route with the specified pattern match and handler.
func (router *Router) OPTIONS(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(OPTIONS, match, handler))
}

// PATCH adds a new PATCH route with the specified pattern match and handler.
func (router *Router) PATCH(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(PATCH, match, handler))
}

// AddCatchAllHandler attaches a catchall handler to the router.
func (router *Router) AddCatchAllHandler(handler CatchAllHandler) {
	router.CatchAll = handler
}

// AddErrorHandler attaches a error handler to the router.
func (router *Router) AddErrorHandler(handler ErrorHandler) {
	router.CatchError = handler
}

// routeInternal loops through all routes and checks if the event matches any
// of them.
//
// If there is a match it executes the route's handler.
//
// If the catch all handler is set and no route is matched it gets executed.
//
// If there is no catch all handler and no route is matched an error is returned.
func (router *Router) routeInternal(ctx context.Context, event Event) (events.APIGatewayProxyResponse, error) {
	for _, route := range router.Routes {
		matched, groups := route.IsMatch(event)

		if !matched {
			continue
		}

		return route.Follow(ctx, event, groups)
	}

	if router.CatchAll != nil {
		return router.CatchAll(ctx, event)
	}

	return events.APIGatewayProxyResponse{}, fmt.Errorf("'%s %s' not found", event.HTTPMethod, event.Path)
}

// Route loops through all routes and checks if the event matches any of them.
//
// If there is a match it executes the route's handler.
//
// If the catch all handler is set and no route is matched it gets executed.
//
// If there is no catch all handler and no route is matched an error is returned.
//
// If there is an error handler set and an error occurs the error handler is
// executed and its result returned.
func (router *Router) Route(ctx context.Context, event Event) (events.APIGatewayProxyResponse, error) {
	if router.CatchError == nil {
		return router.routeInternal(ctx, event)
	}

	response, err := router.routeInternal(ctx, event)

	if err != nil {
		return router.CatchError(ctx, event, err)
	}

	return response, nil
}

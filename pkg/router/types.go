package router

import (
	"errors"

	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/response"
	"github.com/vango-dev/liveview/pkg/routepath"
)

// ErrUnmatched is returned by DispatchErr when no route accepts a request.
var ErrUnmatched = errors.New("router: no route matched")

// Predicate decides whether a route applies to a request. On success it
// returns the parameters captured from the path, if any.
type Predicate func(req *request.Request) (routepath.Params, bool)

// Handler serves a matched request. It writes exactly one response to w
// and may use state, the handle to shared application state.
type Handler[S any] func(req *request.Request, w response.Sink, state S)

// Route is a named predicate/handler pair.
type Route[S any] struct {
	// Name identifies the route in logs and metrics.
	Name string

	// Predicate decides whether the route applies.
	Predicate Predicate

	// Handler serves the request.
	Handler Handler[S]

	// CatchAll marks routes registered with Fallback.
	CatchAll bool
}

// Match is the result of a successful dispatch.
type Match[S any] struct {
	// Route is the matched route.
	Route Route[S]

	// Index is the route's registration position.
	Index int

	// Request is the dispatched request carrying the captured parameters.
	Request *request.Request

	// Handler is the route handler wrapped with the table middleware.
	Handler Handler[S]
}

// Serve invokes the matched handler.
func (m Match[S]) Serve(w response.Sink, state S) {
	m.Handler(m.Request, w, state)
}

// Middleware wraps a handler.
type Middleware[S any] func(next Handler[S]) Handler[S]

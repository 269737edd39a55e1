package router

import (
	"fmt"

	"github.com/vango-dev/liveview/pkg/request"
)

// Table is an ordered list of routes.
// A Table is not safe for concurrent registration; register all routes
// before dispatching. Dispatch itself is safe for concurrent use.
type Table[S any] struct {
	routes     []Route[S]
	middleware []Middleware[S]
}

// New creates an empty route table.
func New[S any]() *Table[S] {
	return &Table[S]{}
}

// Route appends a route and returns the table for chaining.
// It panics if predicate or handler is nil.
func (t *Table[S]) Route(name string, predicate Predicate, handler Handler[S]) *Table[S] {
	return t.Add(Route[S]{Name: name, Predicate: predicate, Handler: handler})
}

// Fallback appends a catch-all route that accepts every request.
func (t *Table[S]) Fallback(name string, handler Handler[S]) *Table[S] {
	return t.Add(Route[S]{Name: name, Predicate: Always(), Handler: handler, CatchAll: true})
}

// Add appends a fully specified route.
func (t *Table[S]) Add(route Route[S]) *Table[S] {
	if route.Predicate == nil {
		panic(fmt.Sprintf("router: route %q has a nil predicate", route.Name))
	}
	if route.Handler == nil {
		panic(fmt.Sprintf("router: route %q has a nil handler", route.Name))
	}
	t.routes = append(t.routes, route)
	return t
}

// Use adds middleware applied to every handler, first to last.
func (t *Table[S]) Use(mw ...Middleware[S]) *Table[S] {
	t.middleware = append(t.middleware, mw...)
	return t
}

// Dispatch returns the first route whose predicate accepts req.
// Predicates after the first match are not evaluated.
func (t *Table[S]) Dispatch(req *request.Request) (Match[S], bool) {
	for i, route := range t.routes {
		params, ok := route.Predicate(req)
		if !ok {
			continue
		}
		return Match[S]{
			Route:   route,
			Index:   i,
			Request: req.WithParams(params),
			Handler: Compose(route.Handler, t.middleware...),
		}, true
	}
	return Match[S]{}, false
}

// DispatchErr is Dispatch with ErrUnmatched for a miss.
func (t *Table[S]) DispatchErr(req *request.Request) (Match[S], error) {
	m, ok := t.Dispatch(req)
	if !ok {
		return Match[S]{}, fmt.Errorf("%w: %s %s", ErrUnmatched, req.Method(), req.Path())
	}
	return m, nil
}

// Len returns the number of routes.
func (t *Table[S]) Len() int {
	return len(t.routes)
}

// Entries returns a copy of the routes in registration order.
func (t *Table[S]) Entries() []Route[S] {
	out := make([]Route[S], len(t.routes))
	copy(out, t.routes)
	return out
}

// Routes returns the route names in registration order.
func (t *Table[S]) Routes() []string {
	names := make([]string, len(t.routes))
	for i, route := range t.routes {
		names[i] = route.Name
	}
	return names
}

// HasCatchAll reports whether the last route was registered with Fallback.
func (t *Table[S]) HasCatchAll() bool {
	return len(t.routes) > 0 && t.routes[len(t.routes)-1].CatchAll
}

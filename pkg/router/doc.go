// Package router implements an ordered, first-match-wins route table.
//
// A Table holds routes in registration order. Each route pairs a predicate
// with a handler. Dispatch evaluates predicates in order and returns the
// first route whose predicate accepts the request; later predicates are
// never evaluated. There is no specificity scoring: order is the only
// tie-break.
//
// # Predicates
//
// Predicates decide whether a route applies and may capture typed path
// parameters, which are attached to the request handed to the handler:
//
//	t := router.New[*listapp.Store]()
//	t.Route("read", router.MethodPath(request.MethodGet, "/read/{n:uint}"), readHandler)
//	t.Fallback("not-found", notFound)
//
//	func readHandler(req *request.Request, w response.Sink, store *listapp.Store) {
//	    n, _ := req.Params().Uint("n") // already validated by the matcher
//	    ...
//	}
//
// # Unmatched Requests
//
// A table should end with a catch-all route (Fallback). Without one,
// Dispatch reports ok == false and DispatchErr returns ErrUnmatched, so the
// caller can map the miss to a default response.
//
// # Middleware
//
// Use wraps every handler with middleware, applied first to last:
//
//	t.Use(router.Recover[*listapp.Store](logger))
package router

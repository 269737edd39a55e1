package middleware

import (
	"context"
	"net/http"
	"sync"
)

// UnmatchedRoute labels requests that no route accepted.
const UnmatchedRoute = "unmatched"

type routeKey struct{}

// routeSlot is shared by every middleware layer of one request.
type routeSlot struct {
	mu   sync.Mutex
	name string
}

// withRouteSlot returns r carrying a route slot, reusing an existing one.
func withRouteSlot(r *http.Request) (*http.Request, *routeSlot) {
	if slot, ok := r.Context().Value(routeKey{}).(*routeSlot); ok {
		return r, slot
	}
	slot := &routeSlot{}
	return r.WithContext(context.WithValue(r.Context(), routeKey{}, slot)), slot
}

func (s *routeSlot) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.name == "" {
		return UnmatchedRoute
	}
	return s.name
}

// SetRoute records the matched route name for the request behind ctx.
// It is a no-op when no middleware installed a route slot.
func SetRoute(ctx context.Context, name string) {
	if slot, ok := ctx.Value(routeKey{}).(*routeSlot); ok {
		slot.mu.Lock()
		slot.name = name
		slot.mu.Unlock()
	}
}

// RouteName returns the route name recorded for ctx, or UnmatchedRoute.
func RouteName(ctx context.Context) string {
	if slot, ok := ctx.Value(routeKey{}).(*routeSlot); ok {
		return slot.get()
	}
	return UnmatchedRoute
}

// RouteSlot installs a route slot without doing anything else. Mount it
// outermost when no other middleware from this package is used but route
// names are still wanted downstream.
func RouteSlot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, _ = withRouteSlot(r)
		next.ServeHTTP(w, r)
	})
}

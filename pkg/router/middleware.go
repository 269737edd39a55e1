package router

import (
	"log/slog"
	"runtime/debug"

	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/response"
)

// Compose builds a handler chain from middleware and a final handler.
// Middleware runs in order (first to last), with the handler at the end.
func Compose[S any](handler Handler[S], mw ...Middleware[S]) Handler[S] {
	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		chain = mw[i](chain)
	}
	return chain
}

// Chain combines multiple middleware into one, applied in order.
func Chain[S any](mw ...Middleware[S]) Middleware[S] {
	return func(next Handler[S]) Handler[S] {
		return Compose(next, mw...)
	}
}

// Only runs mw for requests accepted by condition and skips it otherwise.
func Only[S any](condition Predicate, mw Middleware[S]) Middleware[S] {
	return func(next Handler[S]) Handler[S] {
		wrapped := mw(next)
		return func(req *request.Request, w response.Sink, state S) {
			if _, ok := condition(req); ok {
				wrapped(req, w, state)
				return
			}
			next(req, w, state)
		}
	}
}

// Recover converts a handler panic into a 500 response. If the handler
// already responded before panicking, the panic is only logged.
func Recover[S any](logger *slog.Logger) Middleware[S] {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler[S]) Handler[S] {
		return func(req *request.Request, w response.Sink, state S) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic",
						"method", req.Method(),
						"path", req.Path(),
						"panic", r,
						"stack", string(debug.Stack()))
					_ = w.Respond(response.Err500())
				}
			}()
			next(req, w, state)
		}
	}
}

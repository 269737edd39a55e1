package router

import (
	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/routepath"
)

// Always accepts every request.
func Always() Predicate {
	return func(*request.Request) (routepath.Params, bool) {
		return routepath.Params{}, true
	}
}

// Method accepts requests with method m.
func Method(m request.Method) Predicate {
	return func(req *request.Request) (routepath.Params, bool) {
		return routepath.Params{}, req.Method() == m
	}
}

// Pattern accepts requests whose path matches p.
func Pattern(p routepath.Pattern) Predicate {
	return func(req *request.Request) (routepath.Params, bool) {
		return req.MatchPattern(p)
	}
}

// Path accepts requests whose path matches the pattern string.
// It panics if the pattern is invalid.
func Path(pattern string) Predicate {
	return Pattern(routepath.MustParse(pattern))
}

// MethodPath accepts requests with method m whose path matches pattern.
// The method is checked first so the path is only split-matched for
// requests of the right method.
func MethodPath(m request.Method, pattern string) Predicate {
	return All(Method(m), Path(pattern))
}

// All accepts a request when every predicate does, evaluated in order
// and short-circuiting on the first rejection. Captured parameters are
// merged in order.
func All(preds ...Predicate) Predicate {
	return func(req *request.Request) (routepath.Params, bool) {
		var params routepath.Params
		for _, pred := range preds {
			p, ok := pred(req)
			if !ok {
				return routepath.Params{}, false
			}
			params = params.Merge(p)
		}
		return params, true
	}
}

// Any accepts a request when at least one predicate does and returns the
// parameters of the first one that accepted.
func Any(preds ...Predicate) Predicate {
	return func(req *request.Request) (routepath.Params, bool) {
		for _, pred := range preds {
			if p, ok := pred(req); ok {
				return p, true
			}
		}
		return routepath.Params{}, false
	}
}

// Func adapts a plain boolean function into a Predicate.
func Func(fn func(req *request.Request) bool) Predicate {
	return func(req *request.Request) (routepath.Params, bool) {
		return routepath.Params{}, fn(req)
	}
}

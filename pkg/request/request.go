// Package request defines the immutable request value handed to route
// predicates and handlers.
package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/vango-dev/liveview/pkg/routepath"
)

// Sentinel errors for request handling.
var (
	// ErrBodyConsumed is returned when TakeBody is called more than once.
	ErrBodyConsumed = errors.New("request: body already consumed")

	// ErrBodyTooLarge is returned when the body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request: body too large")

	// ErrUnsupportedMethod is returned for methods outside the Method set.
	ErrUnsupportedMethod = errors.New("request: unsupported method")
)

// DefaultMaxBodyBytes is the body cap used by FromHTTP when none is given.
const DefaultMaxBodyBytes int64 = 1 << 20

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodPatch   Method = http.MethodPatch
	MethodDelete  Method = http.MethodDelete
	MethodHead    Method = http.MethodHead
	MethodOptions Method = http.MethodOptions
)

// ParseMethod converts a method string into a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToUpper(s)); m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodHead, MethodOptions:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}

// Request is a parsed, read-only request.
// The only mutation is TakeBody, which hands out the body exactly once.
type Request struct {
	ctx      context.Context
	method   Method
	path     string
	segments []string
	query    url.Values
	headers  http.Header
	params   routepath.Params
	body     *bodyState
}

// bodyState is shared between a request and the copies made by WithParams.
type bodyState struct {
	mu    sync.Mutex
	data  []byte
	taken bool
}

// New builds a Request. The path may carry a query string. Percent escapes
// in the path are decoded, as net/http does for URL.Path, so a path routes
// the same way here as through FromHTTP; a path with a malformed escape is
// kept as given. The headers and body are not copied; the caller must not
// modify them afterwards.
func New(method Method, path string, headers http.Header, body []byte) *Request {
	if headers == nil {
		headers = http.Header{}
	}
	rawPath, rawQuery, _ := strings.Cut(path, "?")
	query, _ := url.ParseQuery(rawQuery)
	if decoded, err := url.PathUnescape(rawPath); err == nil {
		rawPath = decoded
	}
	if rawPath == "" {
		rawPath = "/"
	}
	return &Request{
		method:   method,
		path:     rawPath,
		segments: routepath.Split(rawPath),
		query:    query,
		headers:  headers,
		body:     &bodyState{data: body},
	}
}

// FromHTTP reads r into a Request. The body is read eagerly, up to
// maxBody bytes (DefaultMaxBodyBytes when maxBody <= 0).
func FromHTTP(r *http.Request, maxBody int64) (*Request, error) {
	method, err := ParseMethod(r.Method)
	if err != nil {
		return nil, err
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	var body []byte
	if r.Body != nil {
		body, err = io.ReadAll(io.LimitReader(r.Body, maxBody+1))
		if err != nil {
			return nil, fmt.Errorf("request: reading body: %w", err)
		}
		if int64(len(body)) > maxBody {
			return nil, ErrBodyTooLarge
		}
	}

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	return &Request{
		ctx:      r.Context(),
		method:   method,
		path:     path,
		segments: routepath.Split(path),
		query:    r.URL.Query(),
		headers:  r.Header.Clone(),
		body:     &bodyState{data: body},
	}, nil
}

// Context returns the request context, never nil.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with its context replaced.
// The copy shares r's body.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("request: nil context")
	}
	clone := *r
	clone.ctx = ctx
	return &clone
}

// Method returns the request method.
func (r *Request) Method() Method { return r.method }

// Path returns the decoded URL path without the query string.
func (r *Request) Path() string { return r.path }

// Segments returns a copy of the path segments as produced by routepath.Split.
func (r *Request) Segments() []string {
	out := make([]string, len(r.segments))
	copy(out, r.segments)
	return out
}

// Query returns a copy of the parsed query string.
func (r *Request) Query() url.Values {
	out := make(url.Values, len(r.query))
	for k, v := range r.query {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Header returns the first value of the named header.
func (r *Request) Header(name string) string {
	return r.headers.Get(name)
}

// Headers returns a copy of all headers.
func (r *Request) Headers() http.Header {
	return r.headers.Clone()
}

// Params returns the values captured by the route that matched this request.
func (r *Request) Params() routepath.Params {
	return r.params
}

// WithParams returns a shallow copy of r carrying params. The copy shares
// r's body, so the body can still be taken only once across both.
func (r *Request) WithParams(params routepath.Params) *Request {
	clone := *r
	clone.params = params
	return &clone
}

// MatchPattern matches the request path against p.
func (r *Request) MatchPattern(p routepath.Pattern) (routepath.Params, bool) {
	return routepath.MatchSegments(p, r.segments)
}

// TakeBody transfers ownership of the body to the caller.
// Every call after the first returns ErrBodyConsumed.
func (r *Request) TakeBody() (Body, error) {
	r.body.mu.Lock()
	defer r.body.mu.Unlock()

	if r.body.taken {
		return Body{}, ErrBodyConsumed
	}
	r.body.taken = true
	data := r.body.data
	r.body.data = nil
	return Body{data: data}, nil
}

// BodyTaken reports whether TakeBody has already been called.
func (r *Request) BodyTaken() bool {
	r.body.mu.Lock()
	defer r.body.mu.Unlock()
	return r.body.taken
}

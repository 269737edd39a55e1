package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vango-dev/liveview/pkg/actor"
	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/response"
)

// Sentinel errors for server conditions.
var (
	// ErrNoResponse is reported when a handler returns without responding.
	ErrNoResponse = errors.New("server: handler did not respond")

	// ErrHandlerPanic is reported when a handler panics.
	ErrHandlerPanic = errors.New("server: handler panicked")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("server: invalid config")

	// ErrServerClosed is returned by Run after Shutdown.
	ErrServerClosed = errors.New("server: closed")
)

// HandlerError wraps a failure inside a route handler.
type HandlerError struct {
	Route  string
	Method request.Method
	Path   string
	Err    error
}

// Error returns the error message with route context.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("server: route %s (%s %s): %v", e.Route, e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// StatusForError maps an error to the HTTP status a handler should
// answer with. Actor timeouts and stopped actors are transient (503),
// oversize bodies are 413, anything else is 500.
func StatusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, actor.ErrTimeout), errors.Is(err, actor.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, request.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, request.ErrUnsupportedMethod):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse returns the canned response for err.
func ErrorResponse(err error) *response.Response {
	return response.Error(StatusForError(err))
}

// RespondError writes the canned response for err to w.
func RespondError(w response.Sink, err error) error {
	return w.Respond(ErrorResponse(err))
}

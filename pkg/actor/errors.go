package actor

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Request.
var (
	// ErrTimeout is returned when the reply does not arrive before the
	// actor timeout or the caller's deadline.
	ErrTimeout = errors.New("actor: request timed out")

	// ErrStopped is returned when the actor has been stopped.
	ErrStopped = errors.New("actor: stopped")

	// ErrHandlerPanic is returned when the handler panicked on the message.
	ErrHandlerPanic = errors.New("actor: handler panicked")
)

// PanicError carries the recovered panic value.
type PanicError struct {
	Actor string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("actor %s: handler panicked: %v", e.Actor, e.Value)
}

// Unwrap returns ErrHandlerPanic.
func (e *PanicError) Unwrap() error {
	return ErrHandlerPanic
}

package actor

import (
	"log/slog"
	"time"
)

const (
	// DefaultMailbox is the mailbox capacity used when none is configured.
	DefaultMailbox = 64

	// DefaultTimeout bounds a single request round-trip.
	DefaultTimeout = 5 * time.Second
)

type options struct {
	name    string
	mailbox int
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures an Actor.
type Option func(*options)

// WithMailbox sets the mailbox capacity. Values below 1 are ignored.
func WithMailbox(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.mailbox = n
		}
	}
}

// WithTimeout bounds each request. Zero disables the actor-side bound,
// leaving only the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.timeout = d
		}
	}
}

// WithName names the actor in logs and errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

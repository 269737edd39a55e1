package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// Handler applies one message to the state and produces the reply.
type Handler[St, M, R any] func(state *St, msg M) R

// Actor owns a state value and serializes access to it.
type Actor[St, M, R any] struct {
	name    string
	timeout time.Duration
	logger  *slog.Logger
	handle  Handler[St, M, R]

	mailbox chan envelope[M, R]
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once

	processed atomic.Uint64
	abandoned atomic.Uint64
}

// envelope carries the requester's context so the loop can drop a message
// whose requester has already given up.
type envelope[M, R any] struct {
	ctx   context.Context
	msg   M
	reply chan result[R]
}

type result[R any] struct {
	value R
	err   error
}

// Start launches the actor goroutine with the initial state. The actor
// stops when Stop is called or ctx is cancelled.
func Start[St, M, R any](ctx context.Context, initial St, handle Handler[St, M, R], opts ...Option) *Actor[St, M, R] {
	o := options{
		name:    "actor",
		mailbox: DefaultMailbox,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	a := &Actor[St, M, R]{
		name:    o.name,
		timeout: o.timeout,
		logger:  o.logger.With("component", "actor", "actor", o.name),
		handle:  handle,
		mailbox: make(chan envelope[M, R], o.mailbox),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go a.loop(ctx, initial)
	return a
}

// loop owns the state. It receives, applies and replies until stopped.
func (a *Actor[St, M, R]) loop(ctx context.Context, state St) {
	defer close(a.done)
	for {
		select {
		case env := <-a.mailbox:
			if err := env.ctx.Err(); err != nil {
				a.abandoned.Add(1)
				a.logger.Debug("dropping abandoned request", "error", err)
				env.reply <- result[R]{err: a.contextError(env.ctx)}
				continue
			}
			res := a.apply(&state, env.msg)
			a.processed.Add(1)
			env.reply <- res

		case <-a.stop:
			return

		case <-ctx.Done():
			return
		}
	}
}

// apply runs the handler with panic recovery.
func (a *Actor[St, M, R]) apply(state *St, msg M) (res result[R]) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("handler panic",
				"panic", r,
				"stack", string(debug.Stack()))
			res = result[R]{err: &PanicError{Actor: a.name, Value: r}}
		}
	}()
	return result[R]{value: a.handle(state, msg)}
}

// Request sends msg and waits for the reply.
//
// A request that times out or is cancelled while still queued is never
// applied, so the error means the state is unchanged. The one exception is
// a message the loop had already started applying when the deadline
// passed: it runs to completion and its reply is discarded.
func (a *Actor[St, M, R]) Request(ctx context.Context, msg M) (R, error) {
	var zero R

	select {
	case <-a.done:
		return zero, ErrStopped
	default:
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	// Buffered so the loop never blocks on an abandoned request.
	reply := make(chan result[R], 1)

	select {
	case a.mailbox <- envelope[M, R]{ctx: ctx, msg: msg, reply: reply}:
	case <-a.done:
		return zero, ErrStopped
	case <-ctx.Done():
		return zero, a.contextError(ctx)
	}

	select {
	case res := <-reply:
		return res.value, res.err
	case <-a.done:
		select {
		case res := <-reply:
			return res.value, res.err
		default:
			return zero, ErrStopped
		}
	case <-ctx.Done():
		return zero, a.contextError(ctx)
	}
}

func (a *Actor[St, M, R]) contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, a.name)
	}
	return ctx.Err()
}

// Stop terminates the actor loop. It is safe to call more than once and
// does not wait; use Done to wait for termination.
func (a *Actor[St, M, R]) Stop() {
	a.once.Do(func() {
		close(a.stop)
	})
}

// Done is closed once the actor loop has exited.
func (a *Actor[St, M, R]) Done() <-chan struct{} {
	return a.done
}

// Processed returns the number of messages applied so far.
func (a *Actor[St, M, R]) Processed() uint64 {
	return a.processed.Load()
}

// Abandoned returns the number of queued messages dropped because their
// requester had already timed out or been cancelled.
func (a *Actor[St, M, R]) Abandoned() uint64 {
	return a.abandoned.Load()
}

// Pending returns the number of messages waiting in the mailbox.
func (a *Actor[St, M, R]) Pending() int {
	return len(a.mailbox)
}

// Name returns the actor name.
func (a *Actor[St, M, R]) Name() string {
	return a.name
}

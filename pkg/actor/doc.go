// Package actor provides a single-goroutine owner for mutable state.
//
// An Actor runs one goroutine that owns a value of type St. Other goroutines
// never touch the state directly; they send messages through a bounded
// mailbox and wait for the reply:
//
//	list := actor.Start(ctx, []string(nil), func(items *[]string, msg Msg) Reply {
//	    ...
//	})
//	defer list.Stop()
//
//	reply, err := list.Request(ctx, Add{Text: "hello"})
//
// Messages are applied strictly one at a time in mailbox order, so the
// handler needs no locking.
//
// # Failure Modes
//
// Request is bounded by the actor timeout (WithTimeout) and by the caller's
// context. A request whose deadline passes returns ErrTimeout; the message
// may still be applied later if it was already queued. Requests to a stopped
// actor return ErrStopped. A panicking handler is recovered and logged, the
// request returns ErrHandlerPanic, and the actor keeps serving.
package actor

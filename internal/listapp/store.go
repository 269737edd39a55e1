package listapp

import (
	"context"
	"fmt"

	"github.com/vango-dev/liveview/pkg/actor"
)

// Message is a request to the item store.
type Message interface {
	isMessage()
}

// Add appends Text to the store.
type Add struct {
	Text string
}

// AllItems asks for every stored item.
type AllItems struct{}

// LastN asks for up to N of the most recent items.
type LastN struct {
	N uint64
}

func (Add) isMessage()      {}
func (AllItems) isMessage() {}
func (LastN) isMessage()    {}

// Reply is the store's answer to a Message.
type Reply struct {
	// Added is set in reply to Add.
	Added bool

	// Items is set in reply to AllItems and LastN.
	Items []string
}

// Items is the state held by the store actor.
type Items struct {
	list []string
}

// handle applies one message to the item list.
func handle(state *Items, msg Message) Reply {
	switch m := msg.(type) {
	case Add:
		state.list = append(state.list, m.Text)
		return Reply{Added: true}
	case AllItems:
		return Reply{Items: state.snapshot(0)}
	case LastN:
		return Reply{Items: state.lastN(m.N)}
	default:
		panic(fmt.Sprintf("listapp: unknown message %T", msg))
	}
}

// lastN returns every item from index 0 whether the store holds fewer
// than n items or not. Callers that need a window must slice the result.
// TODO: window to the last n items once the intended semantics are settled.
func (s *Items) lastN(n uint64) []string {
	return s.snapshot(0)
}

func (s *Items) snapshot(from int) []string {
	out := make([]string, len(s.list)-from)
	copy(out, s.list[from:])
	return out
}

// Store is the actor-backed message list.
type Store struct {
	actor *actor.Actor[Items, Message, Reply]
}

// NewStore starts the store actor. It stops when ctx is cancelled or
// Stop is called.
func NewStore(ctx context.Context, opts ...actor.Option) *Store {
	return &Store{actor: actor.Start(ctx, Items{}, handle, opts...)}
}

// Add stores text.
func (s *Store) Add(ctx context.Context, text string) error {
	_, err := s.actor.Request(ctx, Add{Text: text})
	return err
}

// All returns every stored item in insertion order.
func (s *Store) All(ctx context.Context) ([]string, error) {
	reply, err := s.actor.Request(ctx, AllItems{})
	return reply.Items, err
}

// LastN returns the items for a list of length n.
func (s *Store) LastN(ctx context.Context, n uint64) ([]string, error) {
	reply, err := s.actor.Request(ctx, LastN{N: n})
	return reply.Items, err
}

// Actor exposes the underlying actor for metrics and shutdown.
func (s *Store) Actor() *actor.Actor[Items, Message, Reply] {
	return s.actor
}

// Stop stops the store actor.
func (s *Store) Stop() {
	s.actor.Stop()
}

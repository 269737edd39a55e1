package vdom

// IDGen allocates element IDs for one materialization pass.
//
// An IDGen is owned by its caller and is not safe for concurrent use. Each
// pass should use its own generator; sharing one across concurrent passes
// would interleave IDs.
type IDGen struct {
	next uint64
}

// NewIDGen creates a generator whose first ID is 0.
func NewIDGen() *IDGen {
	return &IDGen{}
}

// NewIDGenFrom creates a generator whose first ID is seed.
func NewIDGenFrom(seed uint64) *IDGen {
	return &IDGen{next: seed}
}

// Next returns the next ID and advances the counter.
func (g *IDGen) Next() uint64 {
	id := g.next
	g.next++
	return id
}

// Peek returns the ID the next call to Next will return.
func (g *IDGen) Peek() uint64 {
	return g.next
}

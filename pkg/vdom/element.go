package vdom

// Element is a materialized node: a concrete tag with an ID unique within
// its materialization pass.
type Element struct {
	ID         uint64            `json:"id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Listeners  []Listener        `json:"listeners,omitempty"`
	Children   []Element         `json:"children,omitempty"`
	Text       *string           `json:"text,omitempty"`
}

// HasText reports whether the element carries text content.
func (e *Element) HasText() bool {
	return e.Text != nil
}

// TextContent returns the element text, or "" when it has none.
func (e *Element) TextContent() string {
	if e.Text == nil {
		return ""
	}
	return *e.Text
}

// Walk visits el and its descendants in preorder. Returning false from fn
// skips the element's children.
func Walk(el *Element, fn func(*Element) bool) {
	if el == nil {
		return
	}
	if !fn(el) {
		return
	}
	for i := range el.Children {
		Walk(&el.Children[i], fn)
	}
}

// Count returns the number of elements in the tree rooted at el.
func Count(el *Element) int {
	n := 0
	Walk(el, func(*Element) bool {
		n++
		return true
	})
	return n
}

// FindByID returns the element with the given ID, or nil.
func FindByID(el *Element, id uint64) *Element {
	var found *Element
	Walk(el, func(e *Element) bool {
		if found != nil {
			return false
		}
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// IDs returns the element IDs in preorder.
func IDs(el *Element) []uint64 {
	var ids []uint64
	Walk(el, func(e *Element) bool {
		ids = append(ids, e.ID)
		return true
	})
	return ids
}

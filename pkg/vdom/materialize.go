package vdom

import (
	"errors"
	"fmt"
)

// Sentinel errors for materialization.
var (
	// ErrUnimplementedKind is returned for node kinds that have no element
	// form.
	ErrUnimplementedKind = errors.New("vdom: node kind cannot be materialized")

	// ErrNilNode is returned when asked to materialize a nil node.
	ErrNilNode = errors.New("vdom: nil node")

	// ErrNilIDGen is returned when Materialize is given no ID generator.
	ErrNilIDGen = errors.New("vdom: nil id generator")
)

// KindError reports a node kind that could not be materialized.
type KindError struct {
	Kind Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("vdom: cannot materialize %s node", e.Kind)
}

// Unwrap returns ErrUnimplementedKind.
func (e *KindError) Unwrap() error {
	return ErrUnimplementedKind
}

// shape is one row of the kind-to-element mapping.
type shape struct {
	tag         string // empty for headings, built from the level
	text        bool   // element carries the node text
	children    bool   // children are materialized; otherwise dropped
	keepAttrs   bool   // attributes and listeners are copied
	unsupported bool
}

var shapes = map[Kind]shape{
	KindHeading:   {text: true, keepAttrs: true},
	KindParagraph: {tag: "p", text: true, children: true, keepAttrs: true},
	KindDiv:       {tag: "div", children: true, keepAttrs: true},
	KindForm:      {tag: "form", children: true, keepAttrs: true},
	KindBr:        {tag: "br"},
	KindInput:     {tag: "input", children: true, keepAttrs: true},
	KindLabel:     {tag: "label", text: true, keepAttrs: true},
	KindSelect:    {tag: "div", children: true, keepAttrs: true},
	KindAnchor:    {tag: "a", text: true, keepAttrs: true},
	KindImage:     {tag: "img", keepAttrs: true},
	KindNoScript:  {tag: "div", text: true},
	KindText:      {unsupported: true},
}

// Materialize converts n into an Element tree, allocating IDs from gen in
// preorder: a parent receives its ID before any of its children.
//
// On error, IDs already drawn from gen are not returned to it.
func Materialize(n *Node, gen *IDGen) (Element, error) {
	if n == nil {
		return Element{}, ErrNilNode
	}
	if gen == nil {
		return Element{}, ErrNilIDGen
	}
	s, ok := shapes[n.Kind]
	if !ok || s.unsupported {
		return Element{}, &KindError{Kind: n.Kind}
	}

	el := Element{
		ID:   gen.Next(),
		Name: s.tag,
	}
	if n.Kind == KindHeading {
		el.Name = fmt.Sprintf("h%d", headingLevel(n.Level))
	}
	if s.text {
		text := n.Text
		el.Text = &text
	}
	if s.keepAttrs {
		if len(n.Attrs) > 0 {
			el.Attributes = make(map[string]string, len(n.Attrs))
			for _, a := range n.Attrs {
				el.Attributes[a.Key] = a.Value
			}
		}
		if len(n.Listeners) > 0 {
			el.Listeners = append([]Listener(nil), n.Listeners...)
		}
	}
	if s.children && len(n.Children) > 0 {
		el.Children = make([]Element, 0, len(n.Children))
		for _, child := range n.Children {
			c, err := Materialize(child, gen)
			if err != nil {
				return Element{}, err
			}
			el.Children = append(el.Children, c)
		}
	}
	return el, nil
}

// MustMaterialize is like Materialize but panics on error.
func MustMaterialize(n *Node, gen *IDGen) Element {
	el, err := Materialize(n, gen)
	if err != nil {
		panic(err)
	}
	return el
}

// MaterializeFresh materializes n with a new generator starting at 0.
func MaterializeFresh(n *Node) (Element, error) {
	return Materialize(n, NewIDGen())
}

func headingLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}

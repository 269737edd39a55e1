package vdom

import "fmt"

// Kind is the node type discriminator. The set is closed.
type Kind uint8

const (
	KindHeading   Kind = iota // <h1> .. <h6>, see Node.Level
	KindParagraph             // <p>
	KindDiv                   // <div>
	KindForm                  // <form>
	KindBr                    // <br>
	KindInput                 // <input>
	KindLabel                 // <label>
	KindSelect                // rendered as <div>
	KindAnchor                // <a>
	KindImage                 // <img>
	KindNoScript              // rendered as <div>
	KindText                  // bare text, not materializable
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "Heading"
	case KindParagraph:
		return "Paragraph"
	case KindDiv:
		return "Div"
	case KindForm:
		return "Form"
	case KindBr:
		return "Br"
	case KindInput:
		return "Input"
	case KindLabel:
		return "Label"
	case KindSelect:
		return "Select"
	case KindAnchor:
		return "Anchor"
	case KindImage:
		return "Image"
	case KindNoScript:
		return "NoScript"
	case KindText:
		return "Text"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node describes one UI element. Treat a Node as immutable once built;
// the With* methods return modified copies.
type Node struct {
	Kind      Kind
	Level     int // heading level, 1..6
	Attrs     []Attr
	Text      string
	Listeners []Listener
	Children  []*Node
}

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Attr returns the effective value of an attribute (last write wins).
func (n *Node) Attr(key string) (string, bool) {
	value, found := "", false
	for _, a := range n.Attrs {
		if a.Key == key {
			value, found = a.Value, true
		}
	}
	return value, found
}

// WithChild returns a copy of n with child appended.
func (n *Node) WithChild(child *Node) *Node {
	cp := n.clone()
	if child != nil {
		cp.Children = append(cp.Children, child)
	}
	return cp
}

// WithAttr returns a copy of n with the attribute appended.
func (n *Node) WithAttr(a Attr) *Node {
	cp := n.clone()
	if !a.IsEmpty() {
		cp.Attrs = append(cp.Attrs, a)
	}
	return cp
}

// WithListener returns a copy of n with the listener appended.
func (n *Node) WithListener(l Listener) *Node {
	cp := n.clone()
	cp.Listeners = append(cp.Listeners, l)
	return cp
}

// WithText returns a copy of n with its text replaced.
func (n *Node) WithText(text string) *Node {
	cp := n.clone()
	cp.Text = text
	return cp
}

// clone copies n with fresh slice headers so appends never alias.
func (n *Node) clone() *Node {
	cp := *n
	cp.Attrs = append([]Attr(nil), n.Attrs...)
	cp.Listeners = append([]Listener(nil), n.Listeners...)
	cp.Children = append([]*Node(nil), n.Children...)
	return &cp
}

// newNode creates a Node of the given kind from factory arguments.
func newNode(kind Kind, args []any) *Node {
	node := &Node{Kind: kind}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional arguments)
			continue

		case Attr:
			if !v.IsEmpty() {
				node.Attrs = append(node.Attrs, v)
			}

		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Attrs = append(node.Attrs, a)
				}
			}

		case Listener:
			node.Listeners = append(node.Listeners, v)

		case []Listener:
			node.Listeners = append(node.Listeners, v...)

		case *Node:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*Node:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			node.Text += v
		}
	}

	return node
}

// Heading creates a heading of the given level, clamped to 1..6.
func Heading(level int, args ...any) *Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	n := newNode(KindHeading, args)
	n.Level = level
	return n
}

func H1(args ...any) *Node { return Heading(1, args...) }
func H2(args ...any) *Node { return Heading(2, args...) }
func H3(args ...any) *Node { return Heading(3, args...) }
func H4(args ...any) *Node { return Heading(4, args...) }
func H5(args ...any) *Node { return Heading(5, args...) }
func H6(args ...any) *Node { return Heading(6, args...) }

func P(args ...any) *Node        { return newNode(KindParagraph, args) }
func Div(args ...any) *Node      { return newNode(KindDiv, args) }
func Form(args ...any) *Node     { return newNode(KindForm, args) }
func Br(args ...any) *Node       { return newNode(KindBr, args) }
func Input(args ...any) *Node    { return newNode(KindInput, args) }
func Label(args ...any) *Node    { return newNode(KindLabel, args) }
func Select(args ...any) *Node   { return newNode(KindSelect, args) }
func A(args ...any) *Node        { return newNode(KindAnchor, args) }
func Img(args ...any) *Node      { return newNode(KindImage, args) }
func NoScript(args ...any) *Node { return newNode(KindNoScript, args) }

// Text creates a bare text node. Text nodes cannot be materialized;
// pass a string argument to a text-bearing kind instead.
func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Textf creates a bare text node with formatted content.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

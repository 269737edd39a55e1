// Package vdom describes UI trees and materializes them into addressable
// element trees.
//
// # Core Types
//
// Node is an immutable description of a UI element: a kind from a closed
// set, attributes, optional text, event listeners and children. Element is
// the materialized form: a concrete tag name plus a numeric ID unique
// within one materialization pass.
//
// # Node API
//
// Nodes are built with variadic factory functions:
//
//	Div(Class("card"),
//	    H1("Message list"),
//	    P("Item: hello"),
//	    Form(Method("post"),
//	        Input(Name("message")),
//	        Input(Type("submit")),
//	    ),
//	)
//
// Arguments may be Attr, []Attr, Listener, []Listener, *Node, []*Node,
// string (text) or nil, which is ignored. Repeated attributes resolve last
// write wins.
//
// # Materialization
//
// Materialize walks a Node in preorder and allocates one ID per emitted
// element from a caller-owned IDGen. Leaf kinds (headings, labels, anchors,
// images, br, noscript) drop their children without allocating IDs for
// them. The same description materialized from the same seed always yields
// an identical Element tree.
package vdom

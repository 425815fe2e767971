package nj

import (
	"fmt"
	"strconv"
)

// RootID is the identifier and label of the synthetic trifurcating root.
const RootID = "root"

// internalLabelPrefix prefixes the label of every inferred ancestor.
const internalLabelPrefix = "Node_"

// Kind tags a Node as a leaf (input taxon) or an internal (inferred) node.
type Kind uint8

const (
	// Leaf is an input taxon; it never has children.
	Leaf Kind = iota

	// Internal is an inferred ancestor: two children for a merge, three for the root.
	Internal
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Leaf {
		return "leaf"
	}

	return "internal"
}

// Node is one vertex of the reconstructed tree.
//
// Leaves carry ids "0".."n-1" in input order. Internal nodes get sequential
// ids from n upwards and the label "Node_<id>"; the root is RootID.
// A node is owned by its parent (the root by the caller). Fields are only
// readable through accessors; the distance to the parent is written once,
// when the node is joined.
type Node struct {
	id       string
	label    string
	distance float64
	kind     Kind
	children []*Node
	joined   bool
}

// newLeaf returns the leaf for input taxon idx.
func newLeaf(idx int, label string) *Node {
	return &Node{id: strconv.Itoa(idx), label: label, kind: Leaf}
}

// newInternal returns an internal node owning children in the given order.
func newInternal(id, label string, children ...*Node) *Node {
	cs := make([]*Node, len(children))
	copy(cs, children)

	return &Node{id: id, label: label, kind: Internal, children: cs}
}

// newAncestor returns the internal node created by the merge numbered seq.
func newAncestor(seq int, left, right *Node) *Node {
	id := strconv.Itoa(seq)

	return newInternal(id, internalLabelPrefix+id, left, right)
}

// join records the branch length to the parent. A second call is a defect.
func (n *Node) join(length float64) error {
	if n.joined {
		return fmt.Errorf("%w: node %s joined twice", ErrInvariant, n.id)
	}
	n.distance = length
	n.joined = true

	return nil
}

// ID returns the node identifier.
func (n *Node) ID() string { return n.id }

// Label returns the display label.
func (n *Node) Label() string { return n.label }

// Distance returns the branch length to the parent (0 for the root).
func (n *Node) Distance() float64 { return n.distance }

// Kind returns Leaf or Internal.
func (n *Node) Kind() Kind { return n.kind }

// IsLeaf reports whether n is an input taxon.
func (n *Node) IsLeaf() bool { return n.kind == Leaf }

// Children returns a copy of the ordered child list (nil for leaves).
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)

	return out
}

// Walk visits n and its descendants in pre-order, left to right.
// depth is 0 for n itself.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	var visit func(*Node, int)
	visit = func(cur *Node, depth int) {
		fn(cur, depth)
		for _, c := range cur.children {
			visit(c, depth+1)
		}
	}
	visit(n, 0)
}

// Leaves returns the leaves under n in pre-order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(node *Node, _ int) {
		if node.IsLeaf() {
			out = append(out, node)
		}
	})

	return out
}

// CountInternal returns the number of internal nodes under n, n included.
func (n *Node) CountInternal() int {
	var c int
	n.Walk(func(node *Node, _ int) {
		if !node.IsLeaf() {
			c++
		}
	})

	return c
}

// TotalLength returns the sum of all branch lengths under n, excluding n's own.
func (n *Node) TotalLength() float64 {
	var s float64
	n.Walk(func(node *Node, depth int) {
		if depth > 0 {
			s += node.distance
		}
	})

	return s
}

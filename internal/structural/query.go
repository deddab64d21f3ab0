// Package structural provides the pluggable structural-query capability
// used by environment resolution: a typed view over a document's block
// structure. Hosts without a parsed view plug in Noop and raw-text
// scanning carries the full load.
package structural

// Node is a typed structural element of a document. Name is the node's
// identifier property, empty for anonymous nodes.
type Node struct {
	Kind  string
	Name  string
	Start int
	End   int
}

// Query enumerates a document's typed structural nodes.
type Query interface {
	// Nodes returns all typed nodes in document order.
	Nodes() []Node
	// NamedNode returns the block kind of the node carrying the given
	// identifier.
	NamedNode(name string) (kind string, ok bool)
	// NodeAt returns the innermost node containing the byte offset.
	NodeAt(offset int) (Node, bool)
}

// Noop is the raw-text-only implementation: it reports no nodes, so
// every structural lookup falls through to text scanning.
type Noop struct{}

// Nodes always returns nil.
func (Noop) Nodes() []Node { return nil }

// NamedNode always reports no node.
func (Noop) NamedNode(string) (string, bool) { return "", false }

// NodeAt always reports no node.
func (Noop) NodeAt(int) (Node, bool) { return Node{}, false }

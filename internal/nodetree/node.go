// Package nodetree arranges stored nodes into the tree the collector form
// selects from.
package nodetree

// Node is a tree node built from a store.Node.
type Node struct {
	ID    int64
	PID   int64
	Ident string
	Name  string
	Path  string

	Children []*Node
	Parent   *Node

	// Leaf is true when the node has no children.
	Leaf  bool
	Depth int
}

// Label is the text shown for the node in the selector.
func (n *Node) Label() string {
	return n.Path
}

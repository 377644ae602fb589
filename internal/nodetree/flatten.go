package nodetree

// Option is one selectable entry of the node selector.
type Option struct {
	ID    int64
	Path  string
	Depth int
	Leaf  bool
}

// Flatten walks the forest depth-first, every node expanded.
func Flatten(roots []*Node) []Option {
	var out []Option
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, Option{ID: n.ID, Path: n.Path, Depth: n.Depth, Leaf: n.Leaf})
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}

// Find returns the node with id, or nil.
func Find(roots []*Node, id int64) *Node {
	for _, n := range roots {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Paths returns the labels of opts in order.
func Paths(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Path
	}
	return out
}

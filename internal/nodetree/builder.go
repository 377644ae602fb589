package nodetree

import (
	"sort"

	"moncollect/internal/store"
)

// Builder constructs node trees from stored nodes.
type Builder struct{}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build converts stored nodes into a forest. Nodes whose parent is 0 or
// missing become roots. Siblings are sorted by path.
func (Builder) Build(nodes []store.Node) ([]*Node, error) {
	if len(nodes) == 0 {
		return []*Node{}, nil
	}

	nodeMap := make(map[int64]*Node, len(nodes))
	for _, sn := range nodes {
		if _, dup := nodeMap[sn.ID]; dup {
			return nil, duplicateNodeError(sn.ID)
		}
		nodeMap[sn.ID] = &Node{
			ID:    sn.ID,
			PID:   sn.PID,
			Ident: sn.Ident,
			Name:  sn.Name,
			Path:  sn.Path,
		}
	}

	for _, node := range nodeMap {
		if node.PID == 0 || node.PID == node.ID {
			continue
		}
		if parent, ok := nodeMap[node.PID]; ok {
			node.Parent = parent
		}
	}

	if err := ensureAcyclic(nodeMap); err != nil {
		return nil, err
	}

	var roots []*Node
	for _, node := range nodeMap {
		if node.Parent == nil {
			roots = append(roots, node)
			continue
		}
		node.Parent.Children = append(node.Parent.Children, node)
	}

	sortNodes(roots)
	for _, root := range roots {
		finalize(root, 0)
	}
	return roots, nil
}

func ensureAcyclic(nodes map[int64]*Node) error {
	visited := make(map[int64]bool, len(nodes))
	for _, start := range nodes {
		if visited[start.ID] {
			continue
		}
		onStack := make(map[int64]bool)
		var chain []int64
		for n := start; n != nil; n = n.Parent {
			if onStack[n.ID] {
				return cyclicParentError(append(chain, n.ID))
			}
			if visited[n.ID] {
				break
			}
			onStack[n.ID] = true
			chain = append(chain, n.ID)
		}
		for _, id := range chain {
			visited[id] = true
		}
	}
	return nil
}

func finalize(n *Node, depth int) {
	n.Depth = depth
	n.Leaf = len(n.Children) == 0
	sortNodes(n.Children)
	for _, child := range n.Children {
		finalize(child, depth+1)
	}
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Path != nodes[j].Path {
			return nodes[i].Path < nodes[j].Path
		}
		return nodes[i].ID < nodes[j].ID
	})
}

package vaultfilter

// TreeNode wraps a facet payload in a hierarchy. Every facet (type, folder,
// collection, organization) is delivered as one of these.
//
// Trees are rebuilt wholesale on each data update and are not modified after
// they are published. Parent is a lookup aid only.
type TreeNode[T Item] struct {
	ID       string
	Node     T
	Children []*TreeNode[T]
	Parent   *TreeNode[T] `json:"-"`
}

// NewTreeNode creates a node whose id is taken from the payload.
func NewTreeNode[T Item](node T, parent *TreeNode[T]) *TreeNode[T] {
	return &TreeNode[T]{
		ID:     node.GetID(),
		Node:   node,
		Parent: parent,
	}
}

// AddChild appends a child built from node and returns it. Only tree
// builders call this, before the tree is published.
func (n *TreeNode[T]) AddChild(node T) *TreeNode[T] {
	child := NewTreeNode(node, n)
	n.Children = append(n.Children, child)
	return child
}

// HasChildren reports whether the node has at least one child.
func (n *TreeNode[T]) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Depth is the number of ancestors above the node.
func (n *TreeNode[T]) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// Find returns the node with the given id in the subtree rooted at n.
func (n *TreeNode[T]) Find(id string) *TreeNode[T] {
	var found *TreeNode[T]
	n.Walk(func(node *TreeNode[T], _ int) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Walk visits the subtree depth-first in child order. Returning false from fn
// stops the walk.
func (n *TreeNode[T]) Walk(fn func(node *TreeNode[T], depth int) bool) {
	if n == nil {
		return
	}
	n.walk(fn, 0)
}

func (n *TreeNode[T]) walk(fn func(*TreeNode[T], int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// IDs returns every id in the subtree, root first.
func (n *TreeNode[T]) IDs() []string {
	var ids []string
	n.Walk(func(node *TreeNode[T], _ int) bool {
		ids = append(ids, node.ID)
		return true
	})
	return ids
}

package keychord

// Target identifies a point in a host's focus tree. An engine scoped to a
// target only sees events at that target or below it; a nil Target means
// the whole window. Implementations must be comparable (pointer types
// are), since containment walks the tree by identity.
type Target interface {
	Parent() Target
}

// Node is a ready-made Target for hosts without a tree of their own.
type Node struct {
	parent Target
	label  string
}

// NewNode creates a node under parent. A nil parent puts the node
// directly below the window.
func NewNode(parent Target, label string) *Node {
	return &Node{parent: parent, label: label}
}

// Parent returns the node above this one, or nil at the top.
func (n *Node) Parent() Target {
	return n.parent
}

// Label returns the node's display label.
func (n *Node) Label() string {
	return n.label
}

func (n *Node) String() string {
	return n.label
}

// contains reports whether t is scope or sits below it. A nil scope is
// the window and contains every target; a nil target originates at the
// window and is inside nothing narrower.
func contains(scope, t Target) bool {
	if scope == nil {
		return true
	}
	for t != nil {
		if t == scope {
			return true
		}
		t = t.Parent()
	}
	return false
}

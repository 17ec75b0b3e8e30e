package cst

// IDSet is a set of node ids. Scope predicates and cursors share this
// representation.
type IDSet map[uint64]bool

// NewIDSet builds a set from the given ids.
func NewIDSet(ids ...uint64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// ExpandToDescendants returns a new set holding every id in ids plus the
// id of every descendant of those nodes, so that selecting a container
// puts all of its content in scope. Single traversal from root; ids not
// reachable from root are dropped.
func ExpandToDescendants(root *Node, ids IDSet) IDSet {
	expanded := make(IDSet, len(ids))
	var walk func(n *Node, covered bool)
	walk = func(n *Node, covered bool) {
		if covered || ids[n.ID] {
			covered = true
			expanded[n.ID] = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, covered)
		}
	}
	if root != nil {
		walk(root, false)
	}
	return expanded
}

// HasDescendantIn reports whether the node's own id or any descendant's
// id is in the set.
func HasDescendantIn(n *Node, ids IDSet) bool {
	found := false
	Visit(n, func(m *Node) bool {
		if ids[m.ID] {
			found = true
			return false
		}
		return true
	})
	return found
}

// InScope reports whether a node is inside the selection scope. When
// hasScope is false there is no explicit scope and everything is in
// scope (the "no scope means whole document" rule).
func InScope(n *Node, ids IDSet, hasScope bool) bool {
	if !hasScope {
		return true
	}
	return ids[n.ID]
}

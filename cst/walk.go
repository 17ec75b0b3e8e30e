package cst

// FirstToken returns the leftmost Token descendant of n (depth-first), or
// nil if the subtree holds no tokens.
func FirstToken(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.Tok != nil {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := FirstToken(c); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the rightmost Token descendant of n (depth-first), or
// nil if the subtree holds no tokens.
func LastToken(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.Tok != nil && n.FirstChild == nil {
		return n
	}
	var last *Node
	if n.Tok != nil {
		last = n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := LastToken(c); t != nil {
			last = t
		}
	}
	return last
}

// ComparePositions orders two (line, column) positions lexicographically:
// -1 if the first precedes the second, 0 if equal, +1 otherwise.
func ComparePositions(line1, col1, line2, col2 int) int {
	switch {
	case line1 < line2:
		return -1
	case line1 > line2:
		return 1
	case col1 < col2:
		return -1
	case col1 > col2:
		return 1
	}
	return 0
}

// FindByID returns the node with the given id in the subtree rooted at
// root, or nil.
func FindByID(root *Node, id uint64) *Node {
	var found *Node
	Visit(root, func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// BuildIDIndex walks the whole tree once and returns an id→node map for
// repeated lookups.
func BuildIDIndex(root *Node) map[uint64]*Node {
	index := make(map[uint64]*Node)
	Visit(root, func(n *Node) bool {
		index[n.ID] = n
		return true
	})
	return index
}

// FindByTag returns every node with the given tag in document order.
func FindByTag(root *Node, tag Tag) []*Node {
	var out []*Node
	Visit(root, func(n *Node) bool {
		if n.Tag == tag {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindFirstByTag returns the first node with the given tag in document
// order, or nil.
func FindFirstByTag(root *Node, tag Tag) *Node {
	var found *Node
	Visit(root, func(n *Node) bool {
		if n.Tag == tag {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindNearestAncestorByTag returns the closest ancestor of the node with
// the given id whose tag matches, counting the node itself as its own
// nearest ancestor when it already matches. Because nodes carry no parent
// pointers this is one finite traversal: the walk pushes an ancestor
// stack on descent, pops it on return, and scans the stack from the top
// when it reaches the target id. Returns nil if the id is absent or no
// ancestor matches.
func FindNearestAncestorByTag(root *Node, id uint64, tag Tag) *Node {
	var stack []*Node
	var found *Node
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		if n.ID == id {
			if n.Tag == tag {
				found = n
				return true
			}
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].Tag == tag {
					found = stack[i]
					return true
				}
			}
			return true
		}
		stack = append(stack, n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		return false
	}
	walk(root)
	return found
}

// FindParent returns the parent of the node with the given id, or nil if
// the id is the root or absent. Root-relative walk; callers mutating the
// tree must re-locate the parent after each mutation.
func FindParent(root *Node, id uint64) *Node {
	var found *Node
	Visit(root, func(n *Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.ID == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// FindPrevSibling returns the child of parent immediately preceding the
// child with the given id, or nil when that child is first (or absent).
func FindPrevSibling(parent *Node, id uint64) *Node {
	var prev *Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.ID == id {
			return prev
		}
		prev = c
	}
	return nil
}

package cst

// Mutation primitives relink FirstChild/NextSibling only. They presume
// preconditions already validated by the caller: prev (when non-nil) is a
// child of parent immediately preceding the insertion point or target,
// and target is a child of parent. A prev located before an earlier
// mutation is stale and must be recomputed (FindPrevSibling) before the
// next call.

// InsertBefore links node into parent's child list immediately after
// prev. A nil prev inserts at the front.
func InsertBefore(parent, prev, node *Node) {
	if prev == nil {
		node.NextSibling = parent.FirstChild
		parent.FirstChild = node
		return
	}
	node.NextSibling = prev.NextSibling
	prev.NextSibling = node
}

// AppendChild links node at the end of parent's child list.
func AppendChild(parent, node *Node) {
	node.NextSibling = nil
	if parent.FirstChild == nil {
		parent.FirstChild = node
		return
	}
	last := parent.FirstChild
	for last.NextSibling != nil {
		last = last.NextSibling
	}
	last.NextSibling = node
}

// RemoveChild unlinks target from parent's child list. The detached
// subtree keeps its ids but becomes unreachable from the root.
func RemoveChild(parent, prev, target *Node) {
	if prev == nil {
		parent.FirstChild = target.NextSibling
	} else {
		prev.NextSibling = target.NextSibling
	}
	target.NextSibling = nil
}

// ReplaceChild unlinks target and links repl in its place.
func ReplaceChild(parent, prev, target, repl *Node) {
	repl.NextSibling = target.NextSibling
	if prev == nil {
		parent.FirstChild = repl
	} else {
		prev.NextSibling = repl
	}
	target.NextSibling = nil
}

// CloneSubtree deep-copies the subtree rooted at n, reassigning a fresh
// id to every node in the copy. The clone's NextSibling is nil. Fresh ids
// are mandatory before splicing a duplicate into the tree: two reachable
// nodes sharing an id would alias one logical cursor entry.
func CloneSubtree(d *Doc, n *Node) *Node {
	clone, _ := CloneSubtreeMap(d, n)
	return clone
}

// CloneSubtreeMap is CloneSubtree plus a mapping from original ids to
// their clones, for callers that must carry a selection across the copy.
func CloneSubtreeMap(d *Doc, n *Node) (*Node, map[uint64]*Node) {
	mapping := make(map[uint64]*Node)
	var clone func(src *Node) *Node
	clone = func(src *Node) *Node {
		dst := &Node{ID: d.NextID(), Tag: src.Tag}
		if src.Tok != nil {
			tok := *src.Tok
			dst.Tok = &tok
		}
		mapping[src.ID] = dst
		var prev *Node
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			cc := clone(c)
			if prev == nil {
				dst.FirstChild = cc
			} else {
				prev.NextSibling = cc
			}
			prev = cc
		}
		return dst
	}
	if n == nil {
		return nil, mapping
	}
	return clone(n), mapping
}

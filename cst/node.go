// Package cst defines the lossless concrete syntax tree the editing
// kernel operates on: a parent-pointer-free node model with first-child /
// next-sibling linkage, root-relative walk primitives, id-set scope
// utilities, and child-list mutation primitives.
//
// Nodes have no parent or previous-sibling pointers. Navigation is
// strictly top-down, left-to-right; any "find parent" or "find
// predecessor" lookup is a root-relative walk. This keeps subtree clone
// and splice O(subtree size) with no back-pointer repair.
package cst

// SentinelCol marks synthetic or boundary tokens (e.g. a trailing newline
// inserted at EOF) that position-based selectors must not bounds-check.
// Walks encountering a sentinel position descend into children instead.
const SentinelCol = -1

// Token is the lexical payload of a leaf node. Line and Col are 0-based.
type Token struct {
	Lexeme string
	Type   TokenType
	Line   int
	Col    int
}

// Synthetic reports whether the token carries a sentinel position.
func (t *Token) Synthetic() bool {
	return t.Col < 0
}

// EndCol returns the column one past the token's last character.
func (t *Token) EndCol() int {
	return t.Col + len(t.Lexeme)
}

// Node is one node of the concrete syntax tree. Leaf nodes carry a
// non-nil Tok; interior nodes have a nil Tok and children. IDs are unique
// within a document at every instant and are never reused; cursors
// reference nodes purely by id.
type Node struct {
	ID          uint64
	Tag         Tag
	Tok         *Token
	FirstChild  *Node
	NextSibling *Node
}

// Children collects the node's direct children into a slice. The slice is
// a snapshot; mutating the tree invalidates it.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Visit walks the subtree rooted at n in preorder, calling fn for every
// node. Returning false from fn stops the walk.
func Visit(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !Visit(c, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n *Node) int {
	total := 0
	Visit(n, func(*Node) bool {
		total++
		return true
	})
	return total
}

// Doc owns the id counter for one document. Every node constructed for or
// cloned into a document's tree must draw its id from the document's Doc;
// there is deliberately no process-wide generator.
type Doc struct {
	nextID uint64
}

// NewDoc returns a Doc whose first issued id is 1. Id 0 is never issued,
// so it can serve as "no node" in callers that need one.
func NewDoc() *Doc {
	return &Doc{nextID: 1}
}

// NextID issues a fresh id. Ids are monotonically increasing and never
// reused within the document.
func (d *Doc) NextID() uint64 {
	id := d.nextID
	d.nextID++
	return id
}

// NewNode allocates an interior node with a fresh id.
func (d *Doc) NewNode(tag Tag) *Node {
	return &Node{ID: d.NextID(), Tag: tag}
}

// NewToken allocates a leaf token node with a fresh id.
func (d *Doc) NewToken(tt TokenType, lexeme string, line, col int) *Node {
	return &Node{
		ID:  d.NextID(),
		Tag: TagToken,
		Tok: &Token{Lexeme: lexeme, Type: tt, Line: line, Col: col},
	}
}

package stave

import (
	"github.com/jward/stave/cst"
)

// Cursor is a set of node ids treated as one logical selection unit — a
// note, a measure, a voice run. The set is unordered; grouping is what
// carries meaning.
type Cursor = cst.IDSet

// Selection pairs a shared tree with an ordered list of cursors.
// Selectors and transforms always return a new Selection value and never
// mutate the input's cursor sets, even though transforms mutate the
// underlying node graph in place.
type Selection struct {
	Root    *cst.Node
	Doc     *cst.Doc
	Cursors []Cursor
}

// New returns a whole-document Selection over root: a single cursor
// holding only the root id, which the structural selectors treat as "no
// explicit scope".
func New(root *cst.Node, doc *cst.Doc) Selection {
	return Selection{
		Root:    root,
		Doc:     doc,
		Cursors: []Cursor{cst.NewIDSet(root.ID)},
	}
}

// withCursors derives a Selection sharing the tree but carrying a fresh
// cursor list.
func (s Selection) withCursors(cursors []Cursor) Selection {
	return Selection{Root: s.Root, Doc: s.Doc, Cursors: cursors}
}

// copyCursors clones the cursor list so a transform can return a fresh
// Selection without aliasing the input's sets.
func copyCursors(cursors []Cursor) []Cursor {
	out := make([]Cursor, len(cursors))
	for i, cur := range cursors {
		c := make(Cursor, len(cur))
		for id := range cur {
			c[id] = true
		}
		out[i] = c
	}
	return out
}

// hasExplicitScope reports whether the Selection carries a meaningful
// scope. An empty cursor list, or a single cursor holding only the root
// id, means "whole document".
func (s Selection) hasExplicitScope() bool {
	if len(s.Cursors) == 0 {
		return false
	}
	if len(s.Cursors) == 1 && len(s.Cursors[0]) == 1 && s.Cursors[0][s.Root.ID] {
		return false
	}
	return true
}

// CollectIDs flattens all cursors into one id set.
func (s Selection) CollectIDs() cst.IDSet {
	ids := make(cst.IDSet)
	for _, cur := range s.Cursors {
		for id := range cur {
			ids[id] = true
		}
	}
	return ids
}

// scopeSet returns the descendant-expanded scope set and whether the
// Selection has an explicit scope at all.
func (s Selection) scopeSet() (cst.IDSet, bool) {
	if !s.hasExplicitScope() {
		return nil, false
	}
	return cst.ExpandToDescendants(s.Root, s.CollectIDs()), true
}

func singleton(id uint64) Cursor {
	return cst.NewIDSet(id)
}

// Unchanged reports whether out is the "nothing applicable" sentinel for
// in: the identical Selection value, sharing in's cursor list rather than
// carrying a fresh one. Several structural selectors document this
// sentinel; see the package comment.
func Unchanged(in, out Selection) bool {
	if in.Root != out.Root || len(in.Cursors) != len(out.Cursors) {
		return false
	}
	if len(in.Cursors) == 0 {
		return true
	}
	return &in.Cursors[0] == &out.Cursors[0]
}

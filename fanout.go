package stave

import (
	"github.com/jward/stave/cst"
)

// WalkStrategy controls how FanOut descends when it meets a Chord.
type WalkStrategy int

const (
	// WalkAll matches every in-scope node the predicate accepts.
	WalkAll WalkStrategy = iota
	// WalkSkipChordChildren matches in scope but never recurses into a
	// Chord's children.
	WalkSkipChordChildren
	// WalkOnlyChordNotes matches only nodes whose direct parent is a
	// Chord, ignoring matches outside chords.
	WalkOnlyChordNotes
)

// FanOut walks the tree once per input cursor and emits one singleton
// cursor per node matching pred under the given strategy. A node is in
// scope once its own id — or any ancestor's id — appears in the cursor
// (scope is sticky on descent).
func (s Selection) FanOut(pred func(*cst.Node) bool, strategy WalkStrategy) Selection {
	var out []Cursor
	for _, cur := range s.Cursors {
		var walk func(n *cst.Node, inScope, parentIsChord bool)
		walk = func(n *cst.Node, inScope, parentIsChord bool) {
			if cur[n.ID] {
				inScope = true
			}
			if inScope && pred(n) {
				if strategy != WalkOnlyChordNotes || parentIsChord {
					out = append(out, singleton(n.ID))
				}
			}
			if strategy == WalkSkipChordChildren && n.Tag == cst.TagChord {
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, inScope, n.Tag == cst.TagChord)
			}
		}
		walk(s.Root, false, false)
	}
	return s.withCursors(out)
}

package stave

import (
	"github.com/jward/stave/cst"
	"github.com/jward/stave/rhythm"
)

// Remove detaches every selected subtree from the tree. The parent and
// previous sibling of each target are located freshly per removal, so
// ids whose subtree was already detached through an ancestor are skipped
// naturally. After Remove, no surviving node carries an id drawn from
// the removed set. Returns a Selection with zero cursors.
func (s Selection) Remove() Selection {
	for id := range s.CollectIDs() {
		if id == s.Root.ID {
			continue
		}
		parent := cst.FindParent(s.Root, id)
		if parent == nil {
			continue
		}
		prev := cst.FindPrevSibling(parent, id)
		var target *cst.Node
		if prev == nil {
			target = parent.FirstChild
		} else {
			target = prev.NextSibling
		}
		cst.RemoveChild(parent, prev, target)
	}
	return s.withCursors(nil)
}

// DivideRhythm divides the rhythm of every selected rhythm-bearing node
// by k. Dividing and then multiplying by the same integer factor
// restores every rhythm exactly.
func (s Selection) DivideRhythm(k int64) Selection {
	if k != 0 {
		s.eachRhythmParent(func(n *cst.Node) {
			rhythm.Divide(s.Doc, n, k)
		})
	}
	return s.withCursors(copyCursors(s.Cursors))
}

// MultiplyRhythm multiplies the rhythm of every selected rhythm-bearing
// node by k.
func (s Selection) MultiplyRhythm(k int64) Selection {
	s.eachRhythmParent(func(n *cst.Node) {
		rhythm.Multiply(s.Doc, n, k)
	})
	return s.withCursors(copyCursors(s.Cursors))
}

// SetRhythm sets the rhythm of every selected rhythm-bearing node to r.
// Setting 1/1 removes the structural rhythm (the implicit default
// duration), preserving broken-rhythm markers.
func (s Selection) SetRhythm(r rhythm.Rational) Selection {
	s.eachRhythmParent(func(n *cst.Node) {
		rhythm.Set(s.Doc, n, r)
	})
	return s.withCursors(copyCursors(s.Cursors))
}

func (s Selection) eachRhythmParent(fn func(*cst.Node)) {
	index := cst.BuildIDIndex(s.Root)
	for _, cur := range s.SelectRhythmParents().Cursors {
		for id := range cur {
			if n := index[id]; n != nil {
				fn(n)
			}
		}
	}
}

// hasTie reports whether a note or chord carries a tie token.
func hasTie(n *cst.Node) bool {
	return findTie(n) != nil
}

func findTie(n *cst.Node) *cst.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Tok != nil && c.Tok.Type == cst.TokTie {
			return c
		}
	}
	return nil
}

// addTie appends a tie token to a note or chord.
func addTie(d *cst.Doc, n *cst.Node) {
	line := 0
	if ft := cst.FirstToken(n); ft != nil {
		line = ft.Tok.Line
	}
	cst.AppendChild(n, d.NewToken(cst.TokTie, "-", line, cst.SentinelCol))
}

// removeTie removes the tie token from a note or chord, if present.
func removeTie(n *cst.Node) {
	tie := findTie(n)
	if tie == nil {
		return
	}
	cst.RemoveChild(n, cst.FindPrevSibling(n, tie.ID), tie)
}

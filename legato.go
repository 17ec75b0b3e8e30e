package stave

import (
	"github.com/jward/stave/cst"
	"github.com/jward/stave/rhythm"
)

// Legato fills gaps with tied copies of the preceding sounding element,
// per cursor, in three ordered stages:
//
//  1. Replacement — a depth-first walk (always descending, since
//     containers like Beam or Tuplet are rarely themselves selected)
//     tracks the current source. A Note or Chord in scope becomes the
//     source; a voice marker or MultiMeasureRest in scope resets it (a
//     different voice or a long silence breaks the chain); a Rest or
//     y-spacer in scope with a source present is replaced by a clone of
//     the source carrying the target's rhythm, the source gains a tie if
//     it lacked one, and the clone becomes the new source.
//  2. Consolidation — consecutive tied notes of identical pitch within
//     the same bar are merged; see [Selection.Consolidate].
//  3. Trailing-tie removal — the last Note or Chord of the cursor drops
//     its tie, since there is nothing left to connect to.
//
// Nodes outside scope are left untouched but still walked through.
func (s Selection) Legato() Selection {
	for _, cur := range s.Cursors {
		s.legatoFill(cur)
		s.consolidateCursor(cur)
		s.dropTrailingTie(cur)
	}
	return s.withCursors(copyCursors(s.Cursors))
}

func (s Selection) legatoFill(cur Cursor) {
	var src *cst.Node

	var visit func(n *cst.Node, inScope bool)
	visit = func(n *cst.Node, inScope bool) {
		var prev *cst.Node
		c := n.FirstChild
		for c != nil {
			next := c.NextSibling
			cScope := inScope || cur[c.ID]
			switch {
			case isVoiceMarker(c) || c.Tag == cst.TagMultiMeasureRest:
				if cScope {
					src = nil
				}
			case c.Tag == cst.TagNote || c.Tag == cst.TagChord:
				if cScope {
					src = c
				}
			case c.Tag == cst.TagRest || c.Tag == cst.TagYSpacer:
				if cScope && src != nil {
					targetRhythm := rhythm.Duration(c)
					clone := cst.CloneSubtree(s.Doc, src)
					rhythm.Set(s.Doc, clone, targetRhythm)
					if !hasTie(src) {
						addTie(s.Doc, src)
					}
					cst.ReplaceChild(n, prev, c, clone)
					src = clone
					c = clone
				}
			default:
				visit(c, cScope)
			}
			prev = c
			c = next
		}
	}
	visit(s.Root, cur[s.Root.ID])
}

// dropTrailingTie removes the tie from the last Note or Chord inside the
// cursor, in document order.
func (s Selection) dropTrailingTie(cur Cursor) {
	var last *cst.Node
	var visit func(n *cst.Node, inScope bool)
	visit = func(n *cst.Node, inScope bool) {
		if cur[n.ID] {
			inScope = true
		}
		if inScope && (n.Tag == cst.TagNote || n.Tag == cst.TagChord) {
			last = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c, inScope)
		}
	}
	visit(s.Root, false)
	if last != nil {
		removeTie(last)
	}
}

package stave

import (
	"github.com/jward/stave/cst"
	"github.com/jward/stave/rhythm"
)

// Consolidate merges consecutive tied notes (or chords) of identical
// pitch content into one element carrying the summed duration. The merge
// operates per cursor and never crosses a barline; any intervening music
// element — a rest, an out-of-scope note, a voice marker — breaks
// adjacency. The merged element keeps a tie only if the absorbed element
// carried one, so chains collapse from the left.
func (s Selection) Consolidate() Selection {
	for _, cur := range s.Cursors {
		s.consolidateCursor(cur)
	}
	return s.withCursors(copyCursors(s.Cursors))
}

func (s Selection) consolidateCursor(cur Cursor) {
	type entry struct {
		node   *cst.Node // nil marks an adjacency boundary
		parent *cst.Node
	}
	var seq []entry
	boundary := func() {
		if len(seq) > 0 && seq[len(seq)-1].node != nil {
			seq = append(seq, entry{})
		}
	}

	// Child iteration rather than a node-at-a-time walk, so each
	// candidate's parent is at hand for the eventual removal.
	var collect func(n *cst.Node, inScope bool)
	collect = func(n *cst.Node, inScope bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			cScope := inScope || cur[c.ID]
			switch c.Tag {
			case cst.TagSystem, cst.TagMusicCode, cst.TagTune, cst.TagTuneBody,
				cst.TagTuneHeader, cst.TagFileHeader, cst.TagBeam, cst.TagTuplet:
				collect(c, cScope)
			case cst.TagNote, cst.TagChord:
				if cScope {
					seq = append(seq, entry{node: c, parent: n})
				} else {
					boundary()
				}
			case cst.TagToken, cst.TagComment, cst.TagDecoration,
				cst.TagAnnotation, cst.TagChordSymbol:
				// lexically neutral, keeps adjacency
			default:
				// barlines, rests, markers, fields: adjacency breaks
				boundary()
			}
		}
	}
	collect(s.Root, cur[s.Root.ID])

	var prev entry
	for _, e := range seq {
		if e.node == nil {
			prev = entry{}
			continue
		}
		if prev.node == nil {
			prev = e
			continue
		}
		if !hasTie(prev.node) || prev.node.Tag != e.node.Tag ||
			pitchKey(prev.node) != pitchKey(e.node) {
			prev = e
			continue
		}
		merged := rhythm.Duration(prev.node).Add(rhythm.Duration(e.node))
		rhythm.Set(s.Doc, prev.node, merged)
		if !hasTie(e.node) {
			removeTie(prev.node)
		}
		p := cst.FindPrevSibling(e.parent, e.node.ID)
		cst.RemoveChild(e.parent, p, e.node)
		// prev stays prev: further equal tied neighbors keep folding in.
	}
}

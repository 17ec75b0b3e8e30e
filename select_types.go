package stave

import (
	"github.com/jward/stave/cst"
)

// Type selectors filter nodes by tag and emit one singleton cursor per
// match. They are idempotent, and the chord/non-chord note selectors
// partition SelectNotes exactly.

func isNote(n *cst.Node) bool  { return n.Tag == cst.TagNote }
func isChord(n *cst.Node) bool { return n.Tag == cst.TagChord }
func isRest(n *cst.Node) bool {
	return n.Tag == cst.TagRest || n.Tag == cst.TagMultiMeasureRest
}

// SelectNotes selects every in-scope Note, including notes inside
// chords, beams, and grace groups.
func (s Selection) SelectNotes() Selection {
	return s.FanOut(isNote, WalkAll)
}

// SelectChords selects every in-scope Chord.
func (s Selection) SelectChords() Selection {
	return s.FanOut(isChord, WalkAll)
}

// SelectRests selects every in-scope Rest and MultiMeasureRest.
func (s Selection) SelectRests() Selection {
	return s.FanOut(isRest, WalkAll)
}

// SelectRhythms selects every in-scope Rhythm node.
func (s Selection) SelectRhythms() Selection {
	return s.FanOut(func(n *cst.Node) bool { return n.Tag == cst.TagRhythm }, WalkAll)
}

// SelectRhythmParents selects every in-scope node that can carry a
// rhythm: Note, Chord, Rest, or y-spacer. Chords count as one unit;
// their inner notes are not selected separately.
func (s Selection) SelectRhythmParents() Selection {
	return s.FanOut(func(n *cst.Node) bool { return n.Tag.IsRhythmParent() }, WalkSkipChordChildren)
}

// SelectChordNotes selects only notes that sit directly inside a Chord.
func (s Selection) SelectChordNotes() Selection {
	return s.FanOut(isNote, WalkOnlyChordNotes)
}

// SelectNonChordNotes selects only notes outside chords.
func (s Selection) SelectNonChordNotes() Selection {
	return s.FanOut(isNote, WalkSkipChordChildren)
}

// SelectTop reduces each in-scope chord to its highest note and keeps
// standalone notes as themselves, one singleton cursor per result.
func (s Selection) SelectTop() Selection {
	return s.selectExtreme(true)
}

// SelectBottom reduces each in-scope chord to its lowest note and keeps
// standalone notes as themselves.
func (s Selection) SelectBottom() Selection {
	return s.selectExtreme(false)
}

func (s Selection) selectExtreme(top bool) Selection {
	var out []Cursor
	for _, cur := range s.Cursors {
		var walk func(n *cst.Node, inScope bool)
		walk = func(n *cst.Node, inScope bool) {
			if cur[n.ID] {
				inScope = true
			}
			if inScope {
				switch n.Tag {
				case cst.TagChord:
					if pick := extremeChordNote(n, top); pick != nil {
						out = append(out, singleton(pick.ID))
					}
					return
				case cst.TagNote:
					out = append(out, singleton(n.ID))
					return
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, inScope)
			}
		}
		walk(s.Root, false)
	}
	return s.withCursors(out)
}

// extremeChordNote returns the chord's highest (or lowest) inner note by
// diatonic height, first wins on ties.
func extremeChordNote(chord *cst.Node, top bool) *cst.Node {
	var best *cst.Node
	bestH := 0
	for c := chord.FirstChild; c != nil; c = c.NextSibling {
		if c.Tag != cst.TagNote {
			continue
		}
		h, ok := pitchHeight(c)
		if !ok {
			continue
		}
		if best == nil || (top && h > bestH) || (!top && h < bestH) {
			best = c
			bestH = h
		}
	}
	return best
}

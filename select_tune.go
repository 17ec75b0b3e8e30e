package stave

import (
	"github.com/jward/stave/cst"
)

// SelectTune resolves the Selection to whole tunes. With no meaningful
// scope it returns one singleton cursor per Tune in the document.
// Otherwise every id in every cursor is resolved to its nearest ancestor
// Tune (or itself if it already is one) and the result is one cursor per
// distinct Tune, in document order. Idempotent.
func (s Selection) SelectTune() Selection {
	tunes := cst.FindByTag(s.Root, cst.TagTune)

	if !s.hasExplicitScope() {
		out := make([]Cursor, 0, len(tunes))
		for _, t := range tunes {
			out = append(out, singleton(t.ID))
		}
		return s.withCursors(out)
	}

	seen := make(cst.IDSet)
	for _, cur := range s.Cursors {
		for id := range cur {
			if t := cst.FindNearestAncestorByTag(s.Root, id, cst.TagTune); t != nil {
				seen[t.ID] = true
			}
		}
	}
	var out []Cursor
	for _, t := range tunes {
		if seen[t.ID] {
			out = append(out, singleton(t.ID))
		}
	}
	return s.withCursors(out)
}

package stave

import (
	"github.com/jward/stave/cst"
)

// SelectMeasures splits tune-body content into one cursor per measure.
// The walk recurses into System and Music_code wrappers; a BarLine or an
// inline voice marker flushes the current run (a voice switch starts a
// new musical context, same as a barline), and crossing a System
// boundary flushes too (a line break ends the current measure). Music
// elements in scope are appended to the current run. When the Selection
// has a scope it is first expanded to descendants.
//
// If no music element ever matched, the input Selection is returned
// unchanged — the "nothing to do" sentinel, distinguishable with
// [Unchanged] from a matched-but-empty result.
func (s Selection) SelectMeasures() Selection {
	out, matched := s.measureCursors()
	if !matched {
		return s
	}
	return s.withCursors(out)
}

// SelectMeasureRange restricts the measure partition to measures start
// through end, 1-based and inclusive. Out-of-bounds ends are clamped; an
// empty intersection yields a zero-cursor Selection. Like
// SelectMeasures, an input with no matching music at all is returned
// unchanged.
func (s Selection) SelectMeasureRange(start, end int) Selection {
	out, matched := s.measureCursors()
	if !matched {
		return s
	}
	if start < 1 {
		start = 1
	}
	if end > len(out) {
		end = len(out)
	}
	if start > end {
		return s.withCursors(nil)
	}
	return s.withCursors(out[start-1 : end])
}

func (s Selection) measureCursors() ([]Cursor, bool) {
	ids, hasScope := s.scopeSet()

	var out []Cursor
	run := make(Cursor)
	matched := false
	flush := func() {
		if len(run) > 0 {
			out = append(out, run)
			run = make(Cursor)
		}
	}

	var visit func(n *cst.Node)
	visit = func(n *cst.Node) {
		switch {
		case n.Tag == cst.TagSystem:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				visit(c)
			}
			flush()
		case n.Tag == cst.TagMusicCode:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				visit(c)
			}
		case n.Tag == cst.TagBarLine:
			flush()
		case isVoiceMarker(n):
			flush()
		case n.Tag.IsMusicElement():
			if cst.InScope(n, ids, hasScope) {
				run[n.ID] = true
				matched = true
			}
		}
	}

	for _, body := range cst.FindByTag(s.Root, cst.TagTuneBody) {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
		flush()
	}
	return out, matched
}

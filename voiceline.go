package stave

import (
	"strings"

	"github.com/jward/stave/cst"
	"github.com/jward/stave/rhythm"
)

// InsertVoiceLine duplicates every source line containing a selected
// note or chord into a new voice. Each matching System is cloned whole
// (with fresh ids throughout), the clone is prefixed with an inline
// [V:name] marker, and then reduced to the selected content: grace
// groups whose target is not selected are dropped, unselected Notes
// become Rests of the same duration, Chords with no selected notes
// become Rests, and chords that retain some selected notes keep only
// those. The clone is spliced in immediately after the original line,
// and the voice is declared in the tune header if it is not already.
func (s Selection) InsertVoiceLine(name string) Selection {
	selected := s.CollectIDs()

	for _, tune := range cst.FindByTag(s.Root, cst.TagTune) {
		body := cst.FindFirstByTag(tune, cst.TagTuneBody)
		if body == nil || !cst.HasDescendantIn(body, selected) {
			continue
		}
		for _, system := range cst.FindByTag(body, cst.TagSystem) {
			if !cst.HasDescendantIn(system, selected) {
				continue
			}
			clone, mapping := cst.CloneSubtreeMap(s.Doc, system)

			// Translate the selection onto the clone's fresh ids.
			cloneSel := make(cst.IDSet)
			for id := range selected {
				if c, ok := mapping[id]; ok {
					cloneSel[c.ID] = true
				}
			}

			reduceToSelection(s.Doc, clone, cloneSel)
			prefixVoiceMarker(s.Doc, clone, name)

			cst.InsertBefore(body, system, clone)
		}
		declareVoice(s.Doc, tune, name)
	}
	return s.withCursors(copyCursors(s.Cursors))
}

// prefixVoiceMarker inserts "[V:name] " at the front of the system's
// music line.
func prefixVoiceMarker(d *cst.Doc, system *cst.Node, name string) {
	target := cst.FindFirstByTag(system, cst.TagMusicCode)
	if target == nil {
		target = system
	}
	line := 0
	if ft := cst.FirstToken(target); ft != nil {
		line = ft.Tok.Line
	}
	marker := inlineField(d, "V:", name, line)
	ws := d.NewToken(cst.TokWS, " ", line, cst.SentinelCol)
	cst.InsertBefore(target, nil, marker)
	cst.InsertBefore(target, marker, ws)
}

// reduceToSelection rewrites a cloned line so only selected material
// still sounds.
func reduceToSelection(d *cst.Doc, root *cst.Node, sel cst.IDSet) {
	var visit func(n *cst.Node)
	visit = func(n *cst.Node) {
		var prev *cst.Node
		c := n.FirstChild
		for c != nil {
			next := c.NextSibling
			switch c.Tag {
			case cst.TagGraceGroup:
				if !graceTargetSelected(c, sel) {
					cst.RemoveChild(n, prev, c)
					c = prev // keep prev stable for the next iteration
				}
			case cst.TagNote:
				if !sel[c.ID] {
					repl := restFor(d, c)
					cst.ReplaceChild(n, prev, c, repl)
					c = repl
				}
			case cst.TagChord:
				if sel[c.ID] {
					break // whole chord selected, keep as is
				}
				if !reduceChord(d, c, sel) {
					repl := restFor(d, c)
					cst.ReplaceChild(n, prev, c, repl)
					c = repl
				}
			case cst.TagBeam, cst.TagTuplet, cst.TagMusicCode, cst.TagSystem:
				visit(c)
			}
			prev = c
			c = next
		}
	}
	visit(root)
}

// graceTargetSelected finds the element a grace group ornaments — the
// next sibling note, chord, or rest — and reports whether it survives
// the reduction. A grace group before a rest, an unselected note, or a
// chord with no selected notes is dropped.
func graceTargetSelected(grace *cst.Node, sel cst.IDSet) bool {
	for c := grace.NextSibling; c != nil; c = c.NextSibling {
		switch c.Tag {
		case cst.TagNote:
			return sel[c.ID]
		case cst.TagChord:
			if sel[c.ID] {
				return true
			}
			for inner := c.FirstChild; inner != nil; inner = inner.NextSibling {
				if inner.Tag == cst.TagNote && sel[inner.ID] {
					return true
				}
			}
			return false
		case cst.TagRest, cst.TagMultiMeasureRest, cst.TagBarLine:
			return false
		}
	}
	return false
}

// reduceChord removes unselected inner notes; reports false when no
// note was selected at all (the chord should become a rest).
func reduceChord(d *cst.Doc, chord *cst.Node, sel cst.IDSet) bool {
	any := false
	for c := chord.FirstChild; c != nil; c = c.NextSibling {
		if c.Tag == cst.TagNote && sel[c.ID] {
			any = true
		}
	}
	if !any {
		return false
	}
	var prev *cst.Node
	c := chord.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Tag == cst.TagNote && !sel[c.ID] {
			cst.RemoveChild(chord, prev, c)
		} else {
			prev = c
		}
		c = next
	}
	return true
}

// restFor builds a rest with the element's duration.
func restFor(d *cst.Doc, elem *cst.Node) *cst.Node {
	line := 0
	if ft := cst.FirstToken(elem); ft != nil {
		line = ft.Tok.Line
	}
	rest := d.NewNode(cst.TagRest)
	cst.AppendChild(rest, d.NewToken(cst.TokRest, "z", line, cst.SentinelCol))
	rhythm.Set(d, rest, rhythm.Duration(elem))
	return rest
}

// declareVoice appends a V: info line to the tune header unless the
// voice is already declared. The declaration goes right before the K:
// line, which closes the header.
func declareVoice(d *cst.Doc, tune *cst.Node, name string) {
	header := cst.FindFirstByTag(tune, cst.TagTuneHeader)
	if header == nil {
		return
	}
	for _, il := range cst.FindByTag(header, cst.TagInfoLine) {
		if strings.HasPrefix(infoHeader(il), "V:") {
			if id, ok := markerVoiceID(il); ok && id == name {
				return
			}
		}
	}
	line := 0
	if ft := cst.FirstToken(header); ft != nil {
		line = ft.Tok.Line
	}
	decl := infoLine(d, "V:", name, line)

	// Insert before the key line when present, else append.
	var prev *cst.Node
	for c := header.FirstChild; c != nil; c = c.NextSibling {
		if c.Tag == cst.TagInfoLine && strings.HasPrefix(infoHeader(c), "K:") {
			cst.InsertBefore(header, prev, decl)
			return
		}
		prev = c
	}
	cst.AppendChild(header, decl)
}

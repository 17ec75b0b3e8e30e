package stave

import (
	"strings"

	"github.com/jward/stave/cst"
)

// VoiceInfoLineToInline converts standalone V: info lines into same-line
// [V:...] inline markers, inserted before the next line's first
// non-whitespace content (or appended as a line of their own when no
// content follows). Values and parameters are preserved verbatim modulo
// formatter-normalized spacing; converting back with
// VoiceInlineToInfoLine restores the original text exactly.
func (s Selection) VoiceInfoLineToInline() Selection {
	ids, hasScope := s.scopeSet()

	for _, body := range cst.FindByTag(s.Root, cst.TagTuneBody) {
		children := body.Children()
		for i, c := range children {
			if c.Tag != cst.TagInfoLine || !isVoiceMarker(c) {
				continue
			}
			if hasScope && !ids[c.ID] {
				continue
			}
			value := strings.TrimSpace(infoValue(c))
			var sys *cst.Node
			for j := i + 1; j < len(children); j++ {
				if children[j].Tag == cst.TagSystem {
					sys = children[j]
					break
				}
			}
			if sys != nil {
				target := cst.FindFirstByTag(sys, cst.TagMusicCode)
				if target == nil {
					target = sys
				}
				line := 0
				if ft := cst.FirstToken(target); ft != nil {
					line = ft.Tok.Line
				}
				marker := inlineField(s.Doc, "V:", value, line)
				ws := s.Doc.NewToken(cst.TokWS, " ", line, cst.SentinelCol)

				// Skip the line's leading whitespace tokens.
				var prev *cst.Node
				for ch := target.FirstChild; ch != nil; ch = ch.NextSibling {
					if ch.Tok == nil || ch.Tok.Type != cst.TokWS {
						break
					}
					prev = ch
				}
				cst.InsertBefore(target, prev, marker)
				cst.InsertBefore(target, marker, ws)
			} else {
				// Nothing follows: give the marker a line of its own at
				// the end of the body.
				line := 0
				if lt := cst.LastToken(body); lt != nil {
					line = lt.Tok.Line
				}
				marker := inlineField(s.Doc, "V:", value, line)
				newSys := s.Doc.NewNode(cst.TagSystem)
				mc := s.Doc.NewNode(cst.TagMusicCode)
				cst.AppendChild(mc, marker)
				cst.AppendChild(mc, s.Doc.NewToken(cst.TokEOL, "\n", line, cst.SentinelCol))
				cst.AppendChild(newSys, mc)
				cst.AppendChild(body, newSys)
			}

			cst.RemoveChild(body, cst.FindPrevSibling(body, c.ID), c)
		}
	}
	return s.withCursors(copyCursors(s.Cursors))
}

// VoiceInlineToInfoLine converts inline [V:...] markers back into
// standalone V: info lines. A marker at the start of its line becomes an
// info line immediately before that line; a marker preceded by real
// content gets a leading EOL first, ending that line, and the info line
// takes over in place. One trailing whitespace token is absorbed either
// way, undoing the spacing the inline conversion inserted.
func (s Selection) VoiceInlineToInfoLine() Selection {
	ids, hasScope := s.scopeSet()

	for _, body := range cst.FindByTag(s.Root, cst.TagTuneBody) {
		for _, sys := range cst.FindByTag(body, cst.TagSystem) {
			for _, mc := range cst.FindByTag(sys, cst.TagMusicCode) {
				s.inlineMarkersToInfoLines(body, sys, mc, ids, hasScope)
			}
		}
	}
	return s.withCursors(copyCursors(s.Cursors))
}

func (s Selection) inlineMarkersToInfoLines(body, sys, mc *cst.Node, ids cst.IDSet, hasScope bool) {
	var prev *cst.Node
	c := mc.FirstChild
	contentBefore := false
	for c != nil {
		next := c.NextSibling
		isMarker := c.Tag == cst.TagInlineField && isVoiceMarker(c) &&
			(!hasScope || ids[c.ID])
		if !isMarker {
			if !(c.Tok != nil && (c.Tok.Type == cst.TokWS || c.Tok.Type == cst.TokEOL)) {
				contentBefore = true
			}
			if c.Tok != nil && c.Tok.Type == cst.TokEOL {
				contentBefore = false
			}
			prev = c
			c = next
			continue
		}

		value := strings.TrimSpace(infoValue(c))
		line := 0
		if ft := cst.FirstToken(c); ft != nil && !ft.Tok.Synthetic() {
			line = ft.Tok.Line
		}
		il := infoLine(s.Doc, "V:", value, line)

		if contentBefore {
			// End the current line, then continue it as an info line.
			cst.ReplaceChild(mc, prev, c, il)
			eol := s.Doc.NewToken(cst.TokEOL, "\n", line, cst.SentinelCol)
			cst.InsertBefore(mc, prev, eol)
			prev = il
		} else {
			// Marker opens the line: hoist it out as a body-level
			// info line before this system.
			cst.RemoveChild(mc, prev, c)
			cst.InsertBefore(body, cst.FindPrevSibling(body, sys.ID), il)
		}

		// Absorb one following whitespace token.
		ws := next
		if ws != nil && ws.Tok != nil && ws.Tok.Type == cst.TokWS {
			next = ws.NextSibling
			cst.RemoveChild(mc, prev, ws)
		}
		c = next
	}
}

package abc

import (
	"github.com/jward/stave/cst"
)

// parseMusicLine scans one line of music into a System wrapping a
// Music_code node. Runs of two or more adjacent notes/chords (no
// whitespace between) are grouped under a Beam, matching how the
// notation beams them.
func (p *parser) parseMusicLine() *cst.Node {
	sys := p.doc.NewNode(cst.TagSystem)
	mc := p.doc.NewNode(cst.TagMusicCode)
	s := &scanner{doc: p.doc, text: p.cur().text, ln: p.ln}
	var flat []*cst.Node
	for !s.done() {
		flat = append(flat, s.next())
	}
	for _, n := range groupBeams(p.doc, flat) {
		cst.AppendChild(mc, n)
	}
	p.eolToken(mc)
	cst.AppendChild(sys, mc)
	return sys
}

type scanner struct {
	doc  *cst.Doc
	text string
	ln   int
	col  int
}

func (s *scanner) done() bool { return s.col >= len(s.text) }

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.text[s.col]
}

func (s *scanner) peekAt(offset int) byte {
	if s.col+offset >= len(s.text) {
		return 0
	}
	return s.text[s.col+offset]
}

// take consumes n bytes as one token.
func (s *scanner) take(n int, tt cst.TokenType) *cst.Node {
	tok := s.doc.NewToken(tt, s.text[s.col:s.col+n], s.ln, s.col)
	s.col += n
	return tok
}

// takeWhile consumes a run of bytes satisfying pred as one token.
func (s *scanner) takeWhile(tt cst.TokenType, pred func(byte) bool) *cst.Node {
	start := s.col
	for !s.done() && pred(s.text[s.col]) {
		s.col++
	}
	return s.doc.NewToken(tt, s.text[start:s.col], s.ln, start)
}

// takeUntil consumes up to and including the terminator (or the rest of
// the line) as one token.
func (s *scanner) takeUntil(tt cst.TokenType, term byte) *cst.Node {
	start := s.col
	s.col++ // opening delimiter
	for !s.done() && s.text[s.col] != term {
		s.col++
	}
	if !s.done() {
		s.col++ // terminator
	}
	return s.doc.NewToken(tt, s.text[start:s.col], s.ln, start)
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'g') || (c >= 'A' && c <= 'G') }
func isAccidental(c byte) bool {
	return c == '^' || c == '_' || c == '='
}

// barlines, longest first.
var barlineForms = []string{"[|", "|]", ":|:", "::", ":|", "|:", "||", "|"}

func (s *scanner) barlineAt() string {
	rest := s.text[s.col:]
	for _, form := range barlineForms {
		if len(rest) >= len(form) && rest[:len(form)] == form {
			return form
		}
	}
	return ""
}

// next scans one element or token.
func (s *scanner) next() *cst.Node {
	c := s.peek()
	switch {
	case c == ' ' || c == '\t':
		return s.takeWhile(cst.TokWS, func(b byte) bool { return b == ' ' || b == '\t' })
	case c == '[':
		if s.peekAt(1) == '|' {
			return s.barlineNode()
		}
		if isInfoByte(s.peekAt(1)) && s.peekAt(2) == ':' {
			return s.inlineFieldNode()
		}
		return s.parseChord()
	case s.barlineAt() != "":
		return s.barlineNode()
	case c == '{':
		return s.parseGraceGroup()
	case c == '(':
		if isDigit(s.peekAt(1)) {
			return s.tupletNode()
		}
		return s.take(1, cst.TokSlur)
	case c == ')':
		return s.take(1, cst.TokSlur)
	case c == '"':
		return s.leafNode(cst.TagAnnotation, s.takeUntil(cst.TokAnnotation, '"'))
	case c == '!':
		return s.leafNode(cst.TagDecoration, s.takeUntil(cst.TokDecoration, '!'))
	case c == '.' || c == '~':
		return s.leafNode(cst.TagDecoration, s.take(1, cst.TokDecoration))
	case c == 'z' || c == 'x':
		return s.parseRest(cst.TagRest)
	case c == 'Z':
		return s.parseRest(cst.TagMultiMeasureRest)
	case c == 'y':
		return s.parseYSpacer()
	case isAccidental(c) && s.noteAfterAccidentals():
		return s.parseNote()
	case isLetter(c):
		return s.parseNote()
	case c == '-':
		return s.take(1, cst.TokTie)
	case c == '&':
		return s.take(1, cst.TokVoiceOverlay)
	case c == '\\':
		return s.take(1, cst.TokLineContinuation)
	case isDigit(c):
		return s.takeWhile(cst.TokNumber, isDigit)
	default:
		return s.take(1, cst.TokInvalid)
	}
}

// leafNode wraps a single token into a named leaf node.
func (s *scanner) leafNode(tag cst.Tag, tok *cst.Node) *cst.Node {
	n := s.doc.NewNode(tag)
	n.Tok = tok.Tok
	return n
}

func isInfoByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func (s *scanner) noteAfterAccidentals() bool {
	i := 0
	for isAccidental(s.peekAt(i)) {
		i++
	}
	return isLetter(s.peekAt(i))
}

func (s *scanner) barlineNode() *cst.Node {
	form := s.barlineAt()
	n := s.doc.NewNode(cst.TagBarLine)
	cst.AppendChild(n, s.take(len(form), cst.TokBarline))
	return n
}

func (s *scanner) tupletNode() *cst.Node {
	start := s.col
	s.col++ // '('
	for !s.done() && (isDigit(s.peek()) || s.peek() == ':') {
		s.col++
	}
	n := s.doc.NewNode(cst.TagTuplet)
	cst.AppendChild(n, s.doc.NewToken(cst.TokTupletMarker, s.text[start:s.col], s.ln, start))
	return n
}

// inlineFieldNode scans "[H:value]".
func (s *scanner) inlineFieldNode() *cst.Node {
	n := s.doc.NewNode(cst.TagInlineField)
	cst.AppendChild(n, s.take(1, cst.TokInlineLeftBracket))
	cst.AppendChild(n, s.take(2, cst.TokInfoHeader))
	start := s.col
	for !s.done() && s.peek() != ']' {
		s.col++
	}
	if s.col > start {
		cst.AppendChild(n, s.doc.NewToken(cst.TokInfoString, s.text[start:s.col], s.ln, start))
	}
	if !s.done() {
		cst.AppendChild(n, s.take(1, cst.TokInlineRightBracket))
	}
	return n
}

func (s *scanner) parseNote() *cst.Node {
	note := s.doc.NewNode(cst.TagNote)
	pitch := s.doc.NewNode(cst.TagPitch)
	if isAccidental(s.peek()) {
		cst.AppendChild(pitch, s.takeWhile(cst.TokAccidental, isAccidental))
	}
	cst.AppendChild(pitch, s.take(1, cst.TokNoteLetter))
	if s.peek() == '\'' || s.peek() == ',' {
		cst.AppendChild(pitch, s.takeWhile(cst.TokOctave, func(b byte) bool {
			return b == '\'' || b == ','
		}))
	}
	cst.AppendChild(note, pitch)
	if rn := s.rhythmNode(); rn != nil {
		cst.AppendChild(note, rn)
	}
	if s.peek() == '-' {
		cst.AppendChild(note, s.take(1, cst.TokTie))
	}
	return note
}

// rhythmNode scans an optional duration suffix: digits, a slash run, an
// explicit denominator, and a broken-rhythm marker run.
func (s *scanner) rhythmNode() *cst.Node {
	var kids []*cst.Node
	if isDigit(s.peek()) {
		kids = append(kids, s.takeWhile(cst.TokRhyNumer, isDigit))
	}
	if s.peek() == '/' {
		kids = append(kids, s.takeWhile(cst.TokRhySep, func(b byte) bool { return b == '/' }))
		if isDigit(s.peek()) {
			kids = append(kids, s.takeWhile(cst.TokRhyDenom, isDigit))
		}
	}
	if c := s.peek(); c == '<' || c == '>' {
		first := c
		kids = append(kids, s.takeWhile(cst.TokRhyBroken, func(b byte) bool { return b == first }))
	}
	if len(kids) == 0 {
		return nil
	}
	rn := s.doc.NewNode(cst.TagRhythm)
	for _, k := range kids {
		cst.AppendChild(rn, k)
	}
	return rn
}

func (s *scanner) parseChord() *cst.Node {
	chord := s.doc.NewNode(cst.TagChord)
	cst.AppendChild(chord, s.take(1, cst.TokChordLeftBracket))
	for !s.done() && s.peek() != ']' {
		switch {
		case isLetter(s.peek()) || (isAccidental(s.peek()) && s.noteAfterAccidentals()):
			cst.AppendChild(chord, s.parseNote())
		case s.peek() == ' ' || s.peek() == '\t':
			cst.AppendChild(chord, s.takeWhile(cst.TokWS, func(b byte) bool { return b == ' ' || b == '\t' }))
		default:
			cst.AppendChild(chord, s.take(1, cst.TokInvalid))
		}
	}
	if !s.done() {
		cst.AppendChild(chord, s.take(1, cst.TokChordRightBracket))
	}
	if rn := s.rhythmNode(); rn != nil {
		cst.AppendChild(chord, rn)
	}
	if s.peek() == '-' {
		cst.AppendChild(chord, s.take(1, cst.TokTie))
	}
	return chord
}

func (s *scanner) parseGraceGroup() *cst.Node {
	g := s.doc.NewNode(cst.TagGraceGroup)
	cst.AppendChild(g, s.take(1, cst.TokGraceLeftBrace))
	if s.peek() == '/' {
		cst.AppendChild(g, s.take(1, cst.TokGraceSlash))
	}
	for !s.done() && s.peek() != '}' {
		switch {
		case isLetter(s.peek()) || (isAccidental(s.peek()) && s.noteAfterAccidentals()):
			cst.AppendChild(g, s.parseNote())
		default:
			cst.AppendChild(g, s.take(1, cst.TokInvalid))
		}
	}
	if !s.done() {
		cst.AppendChild(g, s.take(1, cst.TokGraceRightBrace))
	}
	return g
}

func (s *scanner) parseRest(tag cst.Tag) *cst.Node {
	rest := s.doc.NewNode(tag)
	cst.AppendChild(rest, s.take(1, cst.TokRest))
	if tag == cst.TagMultiMeasureRest {
		if isDigit(s.peek()) {
			cst.AppendChild(rest, s.takeWhile(cst.TokNumber, isDigit))
		}
		return rest
	}
	if rn := s.rhythmNode(); rn != nil {
		cst.AppendChild(rest, rn)
	}
	return rest
}

func (s *scanner) parseYSpacer() *cst.Node {
	y := s.doc.NewNode(cst.TagYSpacer)
	cst.AppendChild(y, s.take(1, cst.TokYSpacer))
	if rn := s.rhythmNode(); rn != nil {
		cst.AppendChild(y, rn)
	}
	return y
}

// groupBeams wraps runs of two or more adjacent notes/chords in a Beam.
// Grace groups ride along inside a run but do not count toward the two.
func groupBeams(doc *cst.Doc, flat []*cst.Node) []*cst.Node {
	beamable := func(n *cst.Node) bool {
		return n.Tag == cst.TagNote || n.Tag == cst.TagChord || n.Tag == cst.TagGraceGroup
	}
	var out []*cst.Node
	i := 0
	for i < len(flat) {
		if !beamable(flat[i]) {
			out = append(out, flat[i])
			i++
			continue
		}
		j := i
		count := 0
		for j < len(flat) && beamable(flat[j]) {
			if flat[j].Tag != cst.TagGraceGroup {
				count++
			}
			j++
		}
		if count >= 2 {
			beam := doc.NewNode(cst.TagBeam)
			for _, n := range flat[i:j] {
				cst.AppendChild(beam, n)
			}
			out = append(out, beam)
		} else {
			out = append(out, flat[i:j]...)
		}
		i = j
	}
	return out
}

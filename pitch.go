package stave

import (
	"strings"

	"github.com/jward/stave/cst"
)

// pitchHeight returns a note's diatonic height in steps relative to
// middle C: letters C..B count 0..6, lowercase letters sit one octave
// up, and each octave mark shifts by seven (' up, , down). Accidentals
// do not affect height; they matter for pitch identity, not ordering on
// the staff.
func pitchHeight(note *cst.Node) (int, bool) {
	pitch := firstChildByTag(note, cst.TagPitch)
	if pitch == nil {
		return 0, false
	}
	h := 0
	seen := false
	for c := pitch.FirstChild; c != nil; c = c.NextSibling {
		if c.Tok == nil {
			continue
		}
		switch c.Tok.Type {
		case cst.TokNoteLetter:
			lx := c.Tok.Lexeme
			if lx == "" {
				continue
			}
			letter := lx[0]
			lower := letter >= 'a' && letter <= 'z'
			if lower {
				letter -= 'a' - 'A'
			}
			idx := strings.IndexByte("CDEFGAB", letter)
			if idx < 0 {
				continue
			}
			h += idx
			if lower {
				h += 7
			}
			seen = true
		case cst.TokOctave:
			for _, r := range c.Tok.Lexeme {
				switch r {
				case '\'':
					h += 7
				case ',':
					h -= 7
				}
			}
		}
	}
	return h, seen
}

// pitchKey returns a textual identity for a note or chord's pitch
// content: the concatenated pitch token lexemes (accidental, letter,
// octave marks), chords as the bracketed join of their inner notes. Two
// elements with equal keys sound the same pitches.
func pitchKey(n *cst.Node) string {
	switch n.Tag {
	case cst.TagNote:
		pitch := firstChildByTag(n, cst.TagPitch)
		if pitch == nil {
			return ""
		}
		var b strings.Builder
		for c := pitch.FirstChild; c != nil; c = c.NextSibling {
			if c.Tok != nil {
				b.WriteString(c.Tok.Lexeme)
			}
		}
		return b.String()
	case cst.TagChord:
		var parts []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Tag == cst.TagNote {
				parts = append(parts, pitchKey(c))
			}
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return ""
}

func firstChildByTag(n *cst.Node, tag cst.Tag) *cst.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

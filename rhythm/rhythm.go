package rhythm

import (
	"strconv"

	"github.com/jward/stave/cst"
)

// A duration is encoded structurally as a Rhythm child of a note, chord,
// rest, or y-spacer: an optional numerator token, a denominator that is
// either explicit or implied by a run of '/' separators (each '/'
// halving), and an optional broken-rhythm marker ('<' or '>', repeatable,
// each repetition halving the asymmetry). An absent Rhythm child means
// the implicit default duration 1/1.

// Find returns the node's direct Rhythm child, or nil.
func Find(n *cst.Node) *cst.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Tag == cst.TagRhythm {
			return c
		}
	}
	return nil
}

// FromRhythmNode decodes a Rhythm node into an explicit rational. A nil
// node decodes to 1/1.
func FromRhythmNode(rn *cst.Node) Rational {
	if rn == nil {
		return One()
	}
	num := int64(1)
	den := int64(1)
	slashes := 0
	explicitDen := false
	for c := rn.FirstChild; c != nil; c = c.NextSibling {
		if c.Tok == nil {
			continue
		}
		switch c.Tok.Type {
		case cst.TokRhyNumer:
			if v, err := strconv.ParseInt(c.Tok.Lexeme, 10, 64); err == nil {
				num = v
			}
		case cst.TokRhySep:
			slashes += len(c.Tok.Lexeme)
		case cst.TokRhyDenom:
			if v, err := strconv.ParseInt(c.Tok.Lexeme, 10, 64); err == nil {
				den = v
				explicitDen = true
			}
		}
	}
	if !explicitDen && slashes > 0 {
		den = int64(1) << uint(slashes)
	}
	return New(num, den)
}

// FromNode decodes the duration of a rhythm-bearing node (Note, Chord,
// Rest, YSpacer). The second result is false when the node cannot carry a
// rhythm at all; a rhythm-bearing node with no Rhythm child decodes to
// the implicit 1/1.
func FromNode(n *cst.Node) (Rational, bool) {
	if n == nil || !n.Tag.IsRhythmParent() {
		return Zero(), false
	}
	return FromRhythmNode(Find(n)), true
}

// Duration returns the effective duration of a music element for
// summation: chords without their own rhythm borrow the first inner
// note's rhythm. Non-rhythm-bearing nodes yield 1/1.
func Duration(n *cst.Node) Rational {
	if n.Tag == cst.TagChord && Find(n) == nil {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Tag == cst.TagNote {
				return FromRhythmNode(Find(c))
			}
		}
	}
	r, ok := FromNode(n)
	if !ok {
		return One()
	}
	return r
}

// Broken returns the broken-rhythm marker lexeme attached to the node's
// Rhythm child ("<", ">", ">>", ...), or "" if there is none.
func Broken(n *cst.Node) string {
	rn := Find(n)
	if rn == nil {
		return ""
	}
	for c := rn.FirstChild; c != nil; c = c.NextSibling {
		if c.Tok != nil && c.Tok.Type == cst.TokRhyBroken {
			return c.Tok.Lexeme
		}
	}
	return ""
}

// BrokenFactors decodes a broken-rhythm marker into the multiplier for
// the marked element and the pending multiplier it imposes on the next
// element. Each repetition of the marker halves the short side: ">" is
// 3/2 and 1/2, ">>" is 7/4 and 1/4. "<" swaps the two. An empty or
// malformed marker decodes to 1/1, 1/1.
func BrokenFactors(marker string) (own, next Rational) {
	own, next = One(), One()
	if marker == "" {
		return own, next
	}
	k := len(marker)
	short := New(1, int64(1)<<uint(k))
	long := New(2, 1).Add(short.MulInt(-1))
	switch marker[0] {
	case '>':
		return long, short
	case '<':
		return short, long
	}
	return own, next
}

// Set replaces the node's Rhythm child with one encoding r. Setting 1/1
// removes the Rhythm child entirely (the implicit default duration)
// while preserving any broken-rhythm marker. The node must be
// rhythm-bearing; anything else is left untouched.
func Set(d *cst.Doc, n *cst.Node, r Rational) {
	if n == nil || !n.Tag.IsRhythmParent() {
		return
	}
	old := Find(n)
	broken := Broken(n)
	line := 0
	if ft := cst.FirstToken(n); ft != nil {
		line = ft.Tok.Line
	}

	var repl *cst.Node
	if !r.IsOne() || broken != "" {
		repl = d.NewNode(cst.TagRhythm)
		if !r.IsOne() {
			if r.Num != 1 {
				cst.AppendChild(repl, d.NewToken(cst.TokRhyNumer, strconv.FormatInt(r.Num, 10), line, cst.SentinelCol))
			}
			if r.Den != 1 {
				cst.AppendChild(repl, d.NewToken(cst.TokRhySep, "/", line, cst.SentinelCol))
				if r.Num != 1 || r.Den != 2 {
					cst.AppendChild(repl, d.NewToken(cst.TokRhyDenom, strconv.FormatInt(r.Den, 10), line, cst.SentinelCol))
				}
			}
		}
		if broken != "" {
			cst.AppendChild(repl, d.NewToken(cst.TokRhyBroken, broken, line, cst.SentinelCol))
		}
	}

	switch {
	case old == nil && repl == nil:
	case old == nil:
		appendRhythm(n, repl)
	case repl == nil:
		cst.RemoveChild(n, cst.FindPrevSibling(n, old.ID), old)
	default:
		cst.ReplaceChild(n, cst.FindPrevSibling(n, old.ID), old, repl)
	}
}

// appendRhythm places a new Rhythm child after the last child preceding
// any trailing tie, so the printed order stays lexical.
func appendRhythm(n *cst.Node, rn *cst.Node) {
	var prev *cst.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Tok != nil && c.Tok.Type == cst.TokTie {
			break
		}
		prev = c
	}
	cst.InsertBefore(n, prev, rn)
}

// Divide sets the node's rhythm to its current value divided by k.
// Divide then Multiply by the same integer factor restores the original
// numerator/denominator pair exactly.
func Divide(d *cst.Doc, n *cst.Node, k int64) {
	if r, ok := FromNode(n); ok && k != 0 {
		Set(d, n, r.DivInt(k))
	}
}

// Multiply sets the node's rhythm to its current value multiplied by k.
func Multiply(d *cst.Doc, n *cst.Node, k int64) {
	if r, ok := FromNode(n); ok {
		Set(d, n, r.MulInt(k))
	}
}

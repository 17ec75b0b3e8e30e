package abc

import (
	"sort"
	"strconv"
	"strings"

	stave "github.com/jward/stave"
	"github.com/jward/stave/cst"
	"github.com/jward/stave/rhythm"
)

// Contexts is a position-sorted record of every key, meter, and clef
// change in a parsed tree. It satisfies the editing kernel's
// ContextSource boundary.
type Contexts struct {
	snaps []stave.Snapshot
}

var _ stave.ContextSource = (*Contexts)(nil)

// NewContexts interprets the K:, M:, and V: fields of root in document
// order. Each field produces a snapshot carrying the full context in
// effect from its position onward.
func NewContexts(root *cst.Node) *Contexts {
	c := &Contexts{}
	cur := stave.DefaultSnapshot()
	cst.Visit(root, func(n *cst.Node) bool {
		if n.Tag != cst.TagInfoLine && n.Tag != cst.TagInlineField {
			return true
		}
		hdr := fieldHeader(n)
		value := strings.TrimSpace(fieldValue(n))
		switch {
		case strings.HasPrefix(hdr, "K:"):
			if key, ok := keyOf(value); ok {
				cur.Key = key
			}
			if clef, ok := clefOf(value); ok {
				cur.Clef = clef
			}
		case strings.HasPrefix(hdr, "M:"):
			if m, ok := meterOf(value); ok {
				cur.Meter = m
			}
		case strings.HasPrefix(hdr, "V:"):
			clef, ok := clefOf(value)
			if !ok {
				return true
			}
			cur.Clef = clef
		default:
			return true
		}
		cur.Pos = fieldPosition(n)
		c.snaps = append(c.snaps, cur)
		return true
	})
	return c
}

// Snapshots returns the snapshots whose governed interval overlaps
// [start, end): the last snapshot at or before start, then every
// snapshot strictly inside the range.
func (c *Contexts) Snapshots(start, end stave.Position) []stave.Snapshot {
	lo := c.EncodePosition(start.Line, start.Col)
	hi := c.EncodePosition(end.Line, end.Col)
	// First snapshot strictly after start.
	i := sort.Search(len(c.snaps), func(i int) bool {
		return c.encode(c.snaps[i].Pos) > lo
	})
	if i > 0 {
		i-- // include the snapshot governing start
	}
	var out []stave.Snapshot
	for ; i < len(c.snaps); i++ {
		if c.encode(c.snaps[i].Pos) >= hi {
			break
		}
		out = append(out, c.snaps[i])
	}
	return out
}

// EncodePosition packs (line, col) so that integer order matches
// lexicographic position order. Sentinel columns clamp to zero.
func (c *Contexts) EncodePosition(line, col int) int64 {
	if col < 0 {
		col = 0
	}
	return int64(line)<<32 | int64(col)
}

func (c *Contexts) encode(p stave.Position) int64 {
	return c.EncodePosition(p.Line, p.Col)
}

func fieldHeader(n *cst.Node) string {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Tok != nil && ch.Tok.Type == cst.TokInfoHeader {
			return ch.Tok.Lexeme
		}
	}
	return ""
}

func fieldValue(n *cst.Node) string {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Tok != nil && ch.Tok.Type == cst.TokInfoString {
			return ch.Tok.Lexeme
		}
	}
	return ""
}

func fieldPosition(n *cst.Node) stave.Position {
	if ft := cst.FirstToken(n); ft != nil && !ft.Tok.Synthetic() {
		return stave.Position{Line: ft.Tok.Line, Col: ft.Tok.Col}
	}
	return stave.Position{}
}

// keyOf extracts the tonic-and-mode word of a K: value, skipping pure
// property fields like "style=rhythm" or "clef=bass".
func keyOf(value string) (string, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 || strings.Contains(fields[0], "=") {
		return "", false
	}
	return fields[0], true
}

// clefOf extracts the clef from a "clef=name" property or a bare clef
// name in a field value.
func clefOf(value string) (string, bool) {
	for _, f := range strings.Fields(value) {
		if name, ok := strings.CutPrefix(f, "clef="); ok {
			return name, true
		}
		switch f {
		case "treble", "bass", "tenor", "alto", "baritone":
			return f, true
		}
	}
	return "", false
}

// meterOf converts an M: value to the measure duration in whole notes.
// "C" is common time, "C|" cut time; "none" yields no meter change.
func meterOf(value string) (rhythm.Rational, bool) {
	switch value {
	case "C", "C|":
		return rhythm.One(), true
	case "", "none":
		return rhythm.Rational{}, false
	}
	num, den, ok := strings.Cut(value, "/")
	if !ok {
		return rhythm.Rational{}, false
	}
	n, err1 := strconv.ParseInt(num, 10, 64)
	d, err2 := strconv.ParseInt(den, 10, 64)
	if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
		return rhythm.Rational{}, false
	}
	return rhythm.New(n, d), true
}

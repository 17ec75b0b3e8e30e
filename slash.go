package stave

import (
	"strconv"
	"strings"

	"github.com/jward/stave/cst"
	"github.com/jward/stave/rhythm"
)

// Durations are summed in default-unit-note lengths (1/8 of a whole
// note), the convention the printed rhythm digits are relative to.
var (
	unitsPerWhole   = rhythm.New(8, 1)
	unitsPerQuarter = rhythm.New(2, 1)
)

// ToSlashNotation rewrites each cursor's measures as rhythmic slash
// notation. Per cursor it queries the key/meter/clef snapshots covering
// the cursor's position range, collects the in-scope content (a selected
// node inside a Beam promotes the whole Beam, since slash notes must not
// stay beamed), splits it at BarLines into per-measure segments, sums
// each segment's duration with exact rational arithmetic, clamps it to
// the meter's measure duration, and replaces the segment's removable
// content with round(duration/quarter) — at least one — quarter-note
// slash notes on the clef's middle-line pitch. BarLines, Annotations,
// non-voice inline fields, comments, and line breaks survive. The first
// and last touched measures of the whole cursor are wrapped in
// [K: style=rhythm] … [K: style=normal] markers.
func (s Selection) ToSlashNotation(ctxs ContextSource) Selection {
	for _, cur := range s.Cursors {
		s.slashCursor(cur, ctxs)
	}
	return s.withCursors(copyCursors(s.Cursors))
}

type slashItem struct {
	node    *cst.Node
	parent  *cst.Node
	barline bool
}

func (s Selection) slashCursor(cur Cursor, ctxs ContextSource) {
	items := s.collectSlashItems(cur)
	if len(items) == 0 {
		return
	}

	snaps := s.cursorSnapshots(cur, ctxs)

	// Split at barlines into per-measure segments.
	var segments [][]slashItem
	var seg []slashItem
	for _, it := range items {
		if it.barline {
			if len(seg) > 0 {
				segments = append(segments, seg)
				seg = nil
			}
			continue
		}
		seg = append(seg, it)
	}
	if len(seg) > 0 {
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return
	}

	var firstSlash, lastSlash *cst.Node
	var firstParent, lastParent *cst.Node
	for _, seg := range segments {
		snap := governingSnapshot(snaps, segmentPosition(seg))
		count := slashCount(seg, snap.Meter)
		first, last, parent := s.replaceSegment(seg, count, snap.Clef)
		if first != nil {
			if firstSlash == nil {
				firstSlash, firstParent = first, parent
			}
			lastSlash, lastParent = last, parent
		}
	}

	if firstSlash == nil {
		return
	}
	line := 0
	if ft := cst.FirstToken(firstSlash); ft != nil {
		line = ft.Tok.Line
	}
	open := inlineField(s.Doc, "K:", " style=rhythm", line)
	openWS := s.Doc.NewToken(cst.TokWS, " ", line, cst.SentinelCol)
	prev := cst.FindPrevSibling(firstParent, firstSlash.ID)
	cst.InsertBefore(firstParent, prev, open)
	cst.InsertBefore(firstParent, open, openWS)

	closeWS := s.Doc.NewToken(cst.TokWS, " ", line, cst.SentinelCol)
	closing := inlineField(s.Doc, "K:", " style=normal", line)
	cst.InsertBefore(lastParent, lastSlash, closeWS)
	cst.InsertBefore(lastParent, closeWS, closing)
}

// collectSlashItems walks the tune bodies gathering, in document order,
// the cursor's removable content plus every BarLine as a split point.
// A Beam with any selected descendant is collected whole.
func (s Selection) collectSlashItems(cur Cursor) []slashItem {
	var items []slashItem
	var visit func(n *cst.Node, inScope bool)
	visit = func(n *cst.Node, inScope bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			cScope := inScope || cur[c.ID]
			switch {
			case c.Tag == cst.TagBarLine:
				items = append(items, slashItem{node: c, parent: n, barline: true})
			case c.Tag == cst.TagBeam:
				if cScope || cst.HasDescendantIn(c, cur) {
					items = append(items, slashItem{node: c, parent: n})
				}
			case c.Tag.IsMusicElement() || c.Tag == cst.TagYSpacer ||
				c.Tag == cst.TagDecoration || c.Tag == cst.TagChordSymbol:
				if cScope {
					items = append(items, slashItem{node: c, parent: n})
				}
			case isVoiceMarker(c) && c.Tag == cst.TagInlineField:
				if cScope {
					items = append(items, slashItem{node: c, parent: n})
				}
			case c.Tag == cst.TagSystem || c.Tag == cst.TagMusicCode || c.Tag == cst.TagTune ||
				c.Tag == cst.TagTuneBody:
				visit(c, cScope)
			case c.Tag == cst.TagToken && c.Tok != nil && c.Tok.Type == cst.TokWS:
				if cScope {
					items = append(items, slashItem{node: c, parent: n})
				}
			}
		}
	}
	visit(s.Root, cur[s.Root.ID])
	return items
}

// cursorSnapshots queries the context source for the cursor's covered
// position range, falling back to the default snapshot.
func (s Selection) cursorSnapshots(cur Cursor, ctxs ContextSource) []Snapshot {
	index := cst.BuildIDIndex(s.Root)
	start := Position{Line: int(^uint(0) >> 1)}
	end := Position{Line: -1}
	for id := range cur {
		n := index[id]
		if n == nil {
			continue
		}
		// Synthetic tokens (sentinel column) carry no usable position;
		// skip them individually so a subtree ending in one, like the
		// root's EOF marker, still contributes its real token range.
		cst.Visit(n, func(m *cst.Node) bool {
			if m.Tok == nil || m.Tok.Synthetic() {
				return true
			}
			if cst.ComparePositions(m.Tok.Line, m.Tok.Col, start.Line, start.Col) < 0 {
				start = Position{m.Tok.Line, m.Tok.Col}
			}
			if cst.ComparePositions(m.Tok.Line, m.Tok.EndCol(), end.Line, end.Col) > 0 {
				end = Position{m.Tok.Line, m.Tok.EndCol()}
			}
			return true
		})
	}
	var snaps []Snapshot
	if ctxs != nil && end.Line >= 0 {
		snaps = ctxs.Snapshots(start, end)
	}
	if len(snaps) == 0 {
		snaps = []Snapshot{DefaultSnapshot()}
	}
	return snaps
}

// segmentPosition is the position of a segment's first real token.
func segmentPosition(seg []slashItem) Position {
	for _, it := range seg {
		if ft := cst.FirstToken(it.node); ft != nil && !ft.Tok.Synthetic() {
			return Position{ft.Tok.Line, ft.Tok.Col}
		}
	}
	return Position{}
}

// governingSnapshot picks the last snapshot at or before pos, or the
// first one when pos precedes them all.
func governingSnapshot(snaps []Snapshot, pos Position) Snapshot {
	pick := snaps[0]
	for _, sn := range snaps[1:] {
		if cst.ComparePositions(sn.Pos.Line, sn.Pos.Col, pos.Line, pos.Col) <= 0 {
			pick = sn
		}
	}
	return pick
}

// slashCount sums a segment's duration and converts it to a number of
// quarter-note slashes: round(duration/quarter), minimum 1, with the
// total clamped to the meter's expected measure duration first.
func slashCount(seg []slashItem, meter rhythm.Rational) int {
	pending := rhythm.One()
	total := rhythm.Zero()

	var add func(n *cst.Node)
	add = func(n *cst.Node) {
		switch n.Tag {
		case cst.TagBeam:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				add(c)
			}
		case cst.TagNote, cst.TagChord, cst.TagRest, cst.TagYSpacer:
			r := rhythm.Duration(n).Mul(pending)
			pending = rhythm.One()
			if marker := rhythm.Broken(n); marker != "" {
				own, next := rhythm.BrokenFactors(marker)
				r = r.Mul(own)
				pending = next
			}
			total = total.Add(r)
		case cst.TagMultiMeasureRest:
			total = total.Add(meter.Mul(unitsPerWhole).MulInt(mmrCount(n)))
		}
	}
	for _, it := range seg {
		add(it.node)
	}

	expected := meter.Mul(unitsPerWhole)
	total = total.Min(expected)

	count := total.Div(unitsPerQuarter).RoundToInt()
	if count < 1 {
		count = 1
	}
	return int(count)
}

// mmrCount reads the bar count of a MultiMeasureRest, default 1.
func mmrCount(n *cst.Node) int64 {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Tok != nil && (c.Tok.Type == cst.TokNumber || c.Tok.Type == cst.TokRhyNumer) {
			if v, err := strconv.ParseInt(c.Tok.Lexeme, 10, 64); err == nil {
				return v
			}
		}
	}
	return 1
}

// replaceSegment removes the segment's content and splices count slash
// notes at the first removed node's position. Returns the first and last
// slash note and their shared parent.
func (s Selection) replaceSegment(seg []slashItem, count int, clef string) (first, last, parent *cst.Node) {
	if len(seg) == 0 {
		return nil, nil, nil
	}
	anchorParent := seg[0].parent
	anchorPrev := cst.FindPrevSibling(anchorParent, seg[0].node.ID)
	line := 0
	if ft := cst.FirstToken(seg[0].node); ft != nil {
		line = ft.Tok.Line
	}

	for _, it := range seg {
		prev := cst.FindPrevSibling(it.parent, it.node.ID)
		if prev == nil && it.parent.FirstChild != it.node {
			continue // already detached
		}
		cst.RemoveChild(it.parent, prev, it.node)
	}

	insertAfter := anchorPrev
	for i := 0; i < count; i++ {
		if i > 0 {
			ws := s.Doc.NewToken(cst.TokWS, " ", line, cst.SentinelCol)
			cst.InsertBefore(anchorParent, insertAfter, ws)
			insertAfter = ws
		}
		note := slashNote(s.Doc, clef, line)
		cst.InsertBefore(anchorParent, insertAfter, note)
		insertAfter = note
		if first == nil {
			first = note
		}
		last = note
	}
	return first, last, anchorParent
}

// slashNote builds one stemless quarter-note slash placeholder: a note
// on the clef's middle-line pitch with rhythm 2 (a quarter at the
// default 1/8 unit).
func slashNote(d *cst.Doc, clef string, line int) *cst.Node {
	letter, octave := slashPitch(clef)
	note := d.NewNode(cst.TagNote)
	pitch := d.NewNode(cst.TagPitch)
	cst.AppendChild(pitch, d.NewToken(cst.TokNoteLetter, letter, line, cst.SentinelCol))
	if octave != "" {
		cst.AppendChild(pitch, d.NewToken(cst.TokOctave, octave, line, cst.SentinelCol))
	}
	cst.AppendChild(note, pitch)
	rn := d.NewNode(cst.TagRhythm)
	cst.AppendChild(rn, d.NewToken(cst.TokRhyNumer, "2", line, cst.SentinelCol))
	cst.AppendChild(note, rn)
	return note
}

// slashPitch maps a clef to its middle staff line: treble, alto, perc,
// and anything unknown sit on B; bass on D; tenor on A below middle C.
func slashPitch(clef string) (letter, octave string) {
	switch {
	case strings.HasPrefix(clef, "bass"):
		return "D", ""
	case strings.HasPrefix(clef, "tenor"):
		return "A", ","
	default:
		return "B", ""
	}
}

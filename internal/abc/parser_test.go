package abc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/stave/cst"
)

func parseT(t *testing.T, src string) *cst.Node {
	t.Helper()
	root, _, err := Parse(src)
	require.NoError(t, err)
	return root
}

func TestParse_RoundTripsExactText(t *testing.T) {
	cases := []string{
		"",
		"X:1\nK:C\nCDE|\n",
		"X:1\nT:Title\nM:4/4\nL:1/8\nK:G\nGABc dedB|dedB dedB|\n",
		"X:1\nK:C\n% a comment\nC2 D2|]\n",
		"free text before\n\nX:1\nK:D\nabc|\nW:words after\n",
		"X:1\nK:C\n[CEG]2 z2 [FAc]2 z2|\n",
		"X:1\nK:C\nV:1\nCDE|\nV:2\nEFG|\n",
		"X:1\nK:C\n[V:1] C,D,E,|[V:2] cde|\n",
		"X:1\nK:C\n{/ab}c2 (3def g>a b<c' y2 Z4|\n",
		"X:1\nK:C\n\"Am\" !trill! .C2- | C2 x2 ||\n",
		"X:1\nK:C\nabc",
		"X:1\nK:C\nC4 | [M:3/4] C2 D2 | & weird \\ chars |:\n",
	}
	for _, src := range cases {
		root := parseT(t, src)
		assert.Equal(t, src, Text(root), "input %q", src)
	}
}

func TestParse_SyntheticEOF(t *testing.T) {
	root := parseT(t, "X:1\nK:C\nC|\n")
	last := cst.LastToken(root)
	require.NotNil(t, last)
	assert.Equal(t, cst.TokEOF, last.Tok.Type)
	assert.Equal(t, "", last.Tok.Lexeme)
	assert.True(t, last.Tok.Synthetic())
}

func TestParse_TuneShape(t *testing.T) {
	root := parseT(t, "X:1\nT:Title\nK:C\nCDE|\nW:some words\n")

	tune := cst.FindFirstByTag(root, cst.TagTune)
	require.NotNil(t, tune)

	header := cst.FindFirstByTag(tune, cst.TagTuneHeader)
	require.NotNil(t, header)
	infos := cst.FindByTag(header, cst.TagInfoLine)
	require.Len(t, infos, 3)
	assert.Equal(t, "X:1\n", Text(infos[0]))
	assert.Equal(t, "K:C\n", Text(infos[2]))

	body := cst.FindFirstByTag(tune, cst.TagTuneBody)
	require.NotNil(t, body)

	// One music line, one body-level info line.
	systems := cst.FindByTag(body, cst.TagSystem)
	require.Len(t, systems, 1)
	bodyInfos := cst.FindByTag(body, cst.TagInfoLine)
	require.Len(t, bodyInfos, 1)
	assert.Equal(t, "W:some words\n", Text(bodyInfos[0]))
}

func TestParse_BeamGrouping(t *testing.T) {
	root := parseT(t, "X:1\nK:C\nCDE F2 G|\n")

	beams := cst.FindByTag(root, cst.TagBeam)
	require.Len(t, beams, 1)
	assert.Equal(t, "CDE", Text(beams[0]))

	// The lone notes stay outside any beam.
	mc := cst.FindFirstByTag(root, cst.TagMusicCode)
	notes := cst.FindByTag(mc, cst.TagNote)
	assert.Len(t, notes, 5)
}

func TestParse_NoteAnatomy(t *testing.T) {
	root := parseT(t, "X:1\nK:C\n^c'3/2- z/\n")

	note := cst.FindFirstByTag(root, cst.TagNote)
	require.NotNil(t, note)
	assert.Equal(t, "^c'3/2-", Text(note))

	pitch := cst.FindFirstByTag(note, cst.TagPitch)
	require.NotNil(t, pitch)
	assert.Equal(t, "^c'", Text(pitch))

	rn := cst.FindFirstByTag(note, cst.TagRhythm)
	require.NotNil(t, rn)
	assert.Equal(t, "3/2", Text(rn))

	rest := cst.FindFirstByTag(root, cst.TagRest)
	require.NotNil(t, rest)
	assert.Equal(t, "z/", Text(rest))
}

func TestParse_ChordAnatomy(t *testing.T) {
	root := parseT(t, "X:1\nK:C\n[CEG]2-\n")

	chord := cst.FindFirstByTag(root, cst.TagChord)
	require.NotNil(t, chord)
	assert.Equal(t, "[CEG]2-", Text(chord))
	assert.Len(t, cst.FindByTag(chord, cst.TagNote), 3)

	// The rhythm and tie belong to the chord, not the inner notes.
	rn := cst.FindFirstByTag(chord, cst.TagRhythm)
	require.NotNil(t, rn)
	for _, inner := range cst.FindByTag(chord, cst.TagNote) {
		assert.Nil(t, cst.FindFirstByTag(inner, cst.TagRhythm))
	}
}

func TestParse_InlineFieldAndBarlines(t *testing.T) {
	root := parseT(t, "X:1\nK:C\nC | [K:G] G |] \n")

	inline := cst.FindFirstByTag(root, cst.TagInlineField)
	require.NotNil(t, inline)
	assert.Equal(t, "[K:G]", Text(inline))

	bars := cst.FindByTag(root, cst.TagBarLine)
	require.Len(t, bars, 2)
	assert.Equal(t, "|", Text(bars[0]))
	assert.Equal(t, "|]", Text(bars[1]))
}

func TestParse_MultiMeasureRest(t *testing.T) {
	root := parseT(t, "X:1\nK:C\nZ4|\n")

	mmr := cst.FindFirstByTag(root, cst.TagMultiMeasureRest)
	require.NotNil(t, mmr)
	assert.Equal(t, "Z4", Text(mmr))
}

func TestParse_TokenPositions(t *testing.T) {
	root := parseT(t, "X:1\nK:C\nC D\n")

	notes := cst.FindByTag(root, cst.TagNote)
	require.Len(t, notes, 2)
	first := cst.FirstToken(notes[0])
	second := cst.FirstToken(notes[1])
	assert.Equal(t, 2, first.Tok.Line)
	assert.Equal(t, 0, first.Tok.Col)
	assert.Equal(t, 2, second.Tok.Line)
	assert.Equal(t, 2, second.Tok.Col)
}

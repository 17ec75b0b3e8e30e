package stave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stave "github.com/jward/stave"
)

func TestSelectTune_OneCursorPerTune(t *testing.T) {
	src := "X:1\nK:C\nCDE|\n\nX:2\nK:G\nGAB|\n"
	sel := mustParse(t, src)

	tunes := sel.SelectTune()
	require.Len(t, tunes.Cursors, 2)
	texts := cursorTexts(tunes)
	assert.Equal(t, "X:1\nK:C\nCDE|\n", texts[0])
	assert.Equal(t, "X:2\nK:G\nGAB|\n", texts[1])
}

func TestSelectTune_ResolvesScopeToOwningTune(t *testing.T) {
	src := "X:1\nK:C\nCDE|\n\nX:2\nK:G\nGAB|\n"
	sel := mustParse(t, src)

	// A note of the second tune resolves to the second tune only.
	notes := sel.SelectNotes()
	lastNote := notes.Cursors[len(notes.Cursors)-1:]
	scoped := stave.Selection{Root: sel.Root, Doc: sel.Doc, Cursors: lastNote}
	owner := scoped.SelectTune()
	require.Len(t, owner.Cursors, 1)
	assert.Equal(t, "X:2\nK:G\nGAB|\n", cursorTexts(owner)[0])
}

func TestSelectTune_Idempotent(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nCDE|\n\nX:2\nK:G\nGAB|\n")
	once := sel.SelectTune()
	twice := once.SelectTune()
	assert.Equal(t, cursorTexts(once), cursorTexts(twice))
}

func TestSelectMeasures_SplitsAtBarlinesAndLineBreaks(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nCD|EF|\nGA|\n")
	measures := sel.SelectMeasures()
	require.Len(t, measures.Cursors, 3)
	assert.Equal(t, []string{"CD", "EF", "GA"}, cursorTexts(measures))
}

func TestSelectMeasures_VoiceMarkerFlushes(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\n[V:1] CD [V:2] EF|\n")
	measures := sel.SelectMeasures()
	assert.Equal(t, []string{"CD", "EF"}, cursorTexts(measures))
}

func TestSelectMeasures_NoMusicIsSentinel(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\n")
	out := sel.SelectMeasures()
	assert.True(t, stave.Unchanged(sel, out))
}

func TestSelectMeasureRange_ClampsAndSlices(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nCD|EF|GA|\n")

	assert.Equal(t, []string{"EF"}, cursorTexts(sel.SelectMeasureRange(2, 2)))
	assert.Equal(t, []string{"EF", "GA"}, cursorTexts(sel.SelectMeasureRange(2, 99)))

	empty := sel.SelectMeasureRange(7, 9)
	assert.Empty(t, empty.Cursors)
	assert.False(t, stave.Unchanged(sel, empty))
}

func TestSelectVoices_TracksMarkers(t *testing.T) {
	src := "X:1\nK:C\nV:1\nCD|\nV:2\nEF|\nV:1\nGA|\n"
	sel := mustParse(t, src)

	one := sel.SelectVoices("1")
	require.Len(t, one.Cursors, 2)
	assert.Equal(t, []string{"CD|", "GA|"}, cursorTexts(one))

	two := sel.SelectVoices("2")
	require.Len(t, two.Cursors, 1)
	assert.Equal(t, []string{"EF|"}, cursorTexts(two))
}

func TestSelectVoices_DefaultVoice(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nCD|\nV:1\nEF|\n")

	def := sel.SelectVoices("default")
	require.Len(t, def.Cursors, 1)
	assert.Equal(t, []string{"CD|"}, cursorTexts(def))

	// "default" is dropped from a multi-id query.
	both := sel.SelectVoices("1 default")
	require.Len(t, both.Cursors, 1)
	assert.Equal(t, []string{"EF|"}, cursorTexts(both))
}

func TestSelectVoices_RestatedMarkerKeepsRun(t *testing.T) {
	// A marker naming the voice already current does not split the run.
	sel := mustParse(t, "X:1\nK:C\nV:1\nCD|\nV:1\nEF|\n")

	one := sel.SelectVoices("1")
	require.Len(t, one.Cursors, 1)
	assert.Equal(t, []string{"CD|EF|"}, cursorTexts(one))
}

func TestSelectVoices_MissingVoiceIsSentinel(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nV:1\nCD|\n")
	out := sel.SelectVoices("3")
	assert.True(t, stave.Unchanged(sel, out))
}

func TestSelectSystem_ExpandsToWholeLines(t *testing.T) {
	src := "X:1\nK:C\nCD|\nW:words\nEF|\n"
	sel := mustParse(t, src)

	// A single note of the second line selects that line plus the
	// preceding info line.
	notes := sel.SelectNotes()
	require.Len(t, notes.Cursors, 4)
	lastNote := stave.Selection{Root: sel.Root, Doc: sel.Doc, Cursors: notes.Cursors[3:]}

	system := lastNote.SelectSystem()
	require.Len(t, system.Cursors, 1)
	assert.Equal(t, "W:words\nEF|\n", cursorTexts(system)[0])
}

func TestSelectSystem_NoScopeIsSentinel(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nCD|\n")
	out := sel.SelectSystem()
	assert.True(t, stave.Unchanged(sel, out))
}

func TestSelectRange_ContainedAndSubToken(t *testing.T) {
	// Line 2 is "CDE F2|".
	sel := mustParse(t, "X:1\nK:C\nCDE F2|\n")

	// Covering the first two letters selects those two notes.
	r := sel.SelectRange(2, 0, 2, 2)
	require.Len(t, r.Cursors, 1)
	assert.Equal(t, []string{"CD"}, cursorTexts(r))

	// A single character inside "F2" still selects structure rather
	// than nothing.
	sub := sel.SelectRange(2, 5, 2, 6)
	require.Len(t, sub.Cursors, 1)
	assert.NotEmpty(t, cursorTexts(sub)[0])
}

func TestSelectRange_DisjointIsEmpty(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nCDE|\n")
	out := sel.SelectRange(9, 0, 9, 5)
	assert.Empty(t, out.Cursors)
}

package stave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectNotes_IncludesChordAndGraceNotes(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\n{ga}C [DF]2 z|\n")
	notes := sel.SelectNotes()

	// g, a, C, D, F — every Note regardless of nesting.
	assert.Len(t, notes.Cursors, 5)
	assert.Equal(t, []string{"g", "a", "C", "D", "F"}, cursorTexts(notes))
}

func TestSelectChordNotes_PartitionsNotes(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nC [DF]2 G|\n")

	all := sel.SelectNotes()
	inChords := sel.SelectChordNotes()
	outside := sel.SelectNonChordNotes()

	assert.Len(t, all.Cursors, 4)
	assert.Equal(t, []string{"D", "F"}, cursorTexts(inChords))
	assert.Equal(t, []string{"C", "G"}, cursorTexts(outside))
	assert.Len(t, inChords.Cursors, len(all.Cursors)-len(outside.Cursors))
}

func TestSelectChords_AndRests(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\n[CE]2 z2 [FA] x Z4|\n")

	assert.Equal(t, []string{"[CE]2", "[FA]"}, cursorTexts(sel.SelectChords()))
	assert.Equal(t, []string{"z2", "x", "Z4"}, cursorTexts(sel.SelectRests()))
}

func TestSelectRhythms(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nC2 D z/ E|\n")
	assert.Equal(t, []string{"2", "/"}, cursorTexts(sel.SelectRhythms()))
}

func TestSelectTopBottom_ChordExample(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\n[CEG]2 z2 [FAc]2 z2|\n")

	top := sel.SelectTop()
	require.Len(t, top.Cursors, 2)
	assert.Equal(t, []string{"G", "c"}, cursorTexts(top))

	bottom := sel.SelectBottom()
	assert.Equal(t, []string{"C", "F"}, cursorTexts(bottom))
}

func TestSelectTop_StandaloneNotesKept(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nC, [ce']2 b|\n")
	assert.Equal(t, []string{"C,", "e'", "b"}, cursorTexts(sel.SelectTop()))
}

func TestTypeSelectors_Idempotent(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nC [DF] z|\n")
	once := sel.SelectNotes()
	twice := once.SelectNotes()
	assert.Equal(t, cursorTexts(once), cursorTexts(twice))
}

func TestTypeSelectors_RespectScope(t *testing.T) {
	sel := mustParse(t, "X:1\nK:C\nCD|EF|\n")
	second := sel.SelectMeasureRange(2, 2)
	require.Len(t, second.Cursors, 1)

	notes := second.SelectNotes()
	assert.Equal(t, []string{"E", "F"}, cursorTexts(notes))
}

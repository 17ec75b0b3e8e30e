package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stave "github.com/jward/stave"
	"github.com/jward/stave/internal/abc"
	"github.com/jward/stave/rhythm"
)

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateFormat("text"))
	assert.NoError(t, validateFormat("json"))
	assert.Error(t, validateFormat("yaml"))
	assert.Error(t, validateFormat(""))
}

func TestParseMeasureRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		start int
		end   int
		ok    bool
	}{
		{"9:16", 9, 16, true},
		{"4", 4, 4, true},
		{"1:1", 1, 1, true},
		{"0:4", 0, 0, false},
		{"5:2", 0, 0, false},
		{"a:b", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, err := parseMeasureRange(tt.in)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestParseRational(t *testing.T) {
	t.Parallel()

	r, err := parseRational("3/2")
	require.NoError(t, err)
	assert.Equal(t, rhythm.New(3, 2), r)

	r, err = parseRational("4")
	require.NoError(t, err)
	assert.Equal(t, rhythm.New(4, 1), r)

	for _, in := range []string{"", "0/2", "3/0", "-1", "x/y"} {
		_, err := parseRational(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestApplyKind_UnknownSelector(t *testing.T) {
	root, doc, err := abc.Parse("X:1\nK:C\nC|\n")
	require.NoError(t, err)
	sel := stave.New(root, doc)

	_, err = applyKind(sel, "arpeggios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown selector")
}

func TestApplyKind_EmptyIsIdentity(t *testing.T) {
	root, doc, err := abc.Parse("X:1\nK:C\nC|\n")
	require.NoError(t, err)
	sel := stave.New(root, doc)

	out, err := applyKind(sel, "")
	require.NoError(t, err)
	assert.True(t, stave.Unchanged(sel, out))
}

func TestFragments_TopmostSelectedOnly(t *testing.T) {
	root, doc, err := abc.Parse("X:1\nK:C\nC2 [DF]2 z|\n")
	require.NoError(t, err)
	sel := stave.New(root, doc)

	notes, err := applyKind(sel, "notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"C2", "D", "F"}, fragments(notes))

	chords, err := applyKind(sel, "chords")
	require.NoError(t, err)
	assert.Equal(t, []string{"[DF]2"}, fragments(chords))
}

func TestApplyEdit_UnknownOperation(t *testing.T) {
	root, doc, err := abc.Parse("X:1\nK:C\nC|\n")
	require.NoError(t, err)
	sel := stave.New(root, doc)

	_, err = applyEdit(sel, "transpose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")
}

func TestApplyEdit_InsertVoiceRequiresName(t *testing.T) {
	root, doc, err := abc.Parse("X:1\nK:C\nC|\n")
	require.NoError(t, err)
	sel := stave.New(root, doc)

	flagName = ""
	_, err = applyEdit(sel, "insert-voice")
	require.Error(t, err)
}

package abc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stave "github.com/jward/stave"
	"github.com/jward/stave/rhythm"
)

func TestNewContexts_TracksKeyMeterClef(t *testing.T) {
	src := "X:1\nM:6/8\nK:D\nDEF|\n[K:G] GAB|[M:4/4] cde|\n"
	root := parseT(t, src)
	ctxs := NewContexts(root)

	// Whole-document query sees every snapshot.
	snaps := ctxs.Snapshots(stave.Position{}, stave.Position{Line: 99})
	require.Len(t, snaps, 4)

	assert.Equal(t, rhythm.New(3, 4), snaps[0].Meter)
	assert.Equal(t, "C", snaps[0].Key, "meter line keeps the default key")
	assert.Equal(t, "treble", snaps[0].Clef)

	assert.Equal(t, "D", snaps[1].Key)
	assert.Equal(t, rhythm.New(3, 4), snaps[1].Meter, "key change keeps the meter")

	assert.Equal(t, "G", snaps[2].Key)

	assert.Equal(t, rhythm.One(), snaps[3].Meter)
	assert.Equal(t, "G", snaps[3].Key, "meter change keeps the key")
}

func TestNewContexts_ClefFromVoiceField(t *testing.T) {
	src := "X:1\nV:1 clef=bass\nK:C\nC,D,|\n"
	root := parseT(t, src)
	ctxs := NewContexts(root)

	snaps := ctxs.Snapshots(stave.Position{Line: 3}, stave.Position{Line: 4})
	require.NotEmpty(t, snaps)
	last := snaps[len(snaps)-1]
	assert.Equal(t, "bass", last.Clef)
	assert.Equal(t, "C", last.Key)
}

func TestSnapshots_IncludesGoverningSnapshot(t *testing.T) {
	src := "X:1\nK:C\nCDE|\n[K:A] abc|\n"
	root := parseT(t, src)
	ctxs := NewContexts(root)

	// A range starting after K:C but before [K:A] still sees K:C.
	snaps := ctxs.Snapshots(stave.Position{Line: 2, Col: 1}, stave.Position{Line: 2, Col: 3})
	require.Len(t, snaps, 1)
	assert.Equal(t, "C", snaps[0].Key)
}

func TestSnapshots_EndIsExclusive(t *testing.T) {
	src := "X:1\nK:D\nCD [K:G] EF|\n"
	root := parseT(t, src)
	ctxs := NewContexts(root)

	// [K:G] sits at (2,3); a range ending exactly there must not see it.
	snaps := ctxs.Snapshots(stave.Position{Line: 2, Col: 0}, stave.Position{Line: 2, Col: 3})
	require.Len(t, snaps, 1)
	assert.Equal(t, "D", snaps[0].Key)
}

func TestEncodePosition_OrderPreserving(t *testing.T) {
	ctxs := &Contexts{}
	assert.Less(t, ctxs.EncodePosition(1, 99), ctxs.EncodePosition(2, 0))
	assert.Less(t, ctxs.EncodePosition(3, 4), ctxs.EncodePosition(3, 5))
	// Sentinel columns clamp rather than wrapping negative.
	assert.Equal(t, ctxs.EncodePosition(5, 0), ctxs.EncodePosition(5, -1))
}

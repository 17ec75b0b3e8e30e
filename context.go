package stave

import (
	"github.com/jward/stave/rhythm"
)

// Position is a 0-based (line, column) text position.
type Position struct {
	Line int
	Col  int
}

// Snapshot is an externally supplied record of the key, meter, and clef
// in effect from Pos until the next snapshot. Meter is the measure
// duration in whole notes (4/4 is 1/1, 6/8 is 3/4).
type Snapshot struct {
	Pos   Position
	Key   string
	Meter rhythm.Rational
	Clef  string
}

// ContextSource is the semantic-interpreter boundary consumed by the
// slash-notation transform: a position-sorted snapshot list with a range
// query, plus a position encoding that preserves lexicographic order so
// callers can binary-search.
type ContextSource interface {
	// Snapshots returns all snapshots whose governed interval overlaps
	// [start, end), in position order.
	Snapshots(start, end Position) []Snapshot
	// EncodePosition linearizes a position; encoded order matches
	// lexicographic (line, col) order.
	EncodePosition(line, col int) int64
}

// DefaultSnapshot is the context assumed when no snapshot governs a
// position: C major, common time, treble clef.
func DefaultSnapshot() Snapshot {
	return Snapshot{Key: "C", Meter: rhythm.One(), Clef: "treble"}
}

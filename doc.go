// Package stave is a structural editing kernel for a lossless concrete
// syntax tree of ABC music notation. It selects structurally meaningful
// regions of a parsed score (notes, chords, measures, voices, systems,
// arbitrary text ranges) and applies tree-rewriting transforms while
// preserving every lexical detail needed for exact-text reformatting.
//
// # Model
//
// The tree is the parent-pointer-free [cst.Node] model. A [Selection]
// pairs a shared tree root with an ordered list of [Cursor] values, each
// a set of node ids treated as one logical unit (a note, a measure, a
// voice run). Selectors derive new Selections; transforms mutate the
// tree in place but still return fresh Selection values — input cursor
// lists are never mutated.
//
// # Usage
//
//	root, doc, err := abc.Parse(src)
//	sel := stave.New(root, doc)
//	sel = sel.SelectVoices("2").SelectMeasures().Legato()
//
// # No-match conventions
//
// This layer favors silent, total functions over errors. Structural
// selectors distinguish "nothing applicable" (the input Selection
// returned unchanged, detectable with [Unchanged]) from "matched
// structure but no content" (a fresh Selection with zero cursors). The
// convention is per-function and documented on each selector; callers
// depend on the distinction, e.g. to detect that a queried voice does
// not exist at all.
//
// All operations are synchronous and single-threaded. Selectors are
// read-only and may run concurrently over an unmutated tree; transforms
// assume exclusive access to the document for the duration of one call.
package stave

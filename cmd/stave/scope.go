package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	stave "github.com/jward/stave"
	"github.com/jward/stave/cst"
	"github.com/jward/stave/internal/abc"
)

// Scope flags shared by select and edit.
var (
	flagVoices   string
	flagMeasures string
)

func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagVoices, "voices", "", "restrict to voices (space or comma separated ids, or \"default\")")
	cmd.Flags().StringVar(&flagMeasures, "measures", "", "restrict to a measure range, e.g. 9:16 or 4")
}

// parseFileSelection parses an ABC file into a whole-file selection.
func parseFileSelection(path string) (stave.Selection, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return stave.Selection{}, fmt.Errorf("reading %s: %w", path, err)
	}
	root, doc, err := abc.Parse(string(src))
	if err != nil {
		return stave.Selection{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return stave.New(root, doc), nil
}

// applyScope narrows a selection by the --voices and --measures flags.
func applyScope(sel stave.Selection) (stave.Selection, error) {
	if flagVoices != "" {
		sel = sel.SelectVoices(flagVoices)
	}
	if flagMeasures != "" {
		start, end, err := parseMeasureRange(flagMeasures)
		if err != nil {
			return sel, err
		}
		sel = sel.SelectMeasureRange(start, end)
	}
	return sel, nil
}

// parseMeasureRange parses "a:b" (inclusive) or a single measure "a".
func parseMeasureRange(s string) (int, int, error) {
	lo, hi, found := strings.Cut(s, ":")
	if !found {
		hi = lo
	}
	start, err1 := strconv.Atoi(lo)
	end, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil || start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid measure range %q (want N or N:M)", s)
	}
	return start, end, nil
}

// applyKind applies one of the named type selectors. An empty kind
// leaves the selection as is.
func applyKind(sel stave.Selection, kind string) (stave.Selection, error) {
	switch kind {
	case "":
		return sel, nil
	case "notes":
		return sel.SelectNotes(), nil
	case "chords":
		return sel.SelectChords(), nil
	case "rests":
		return sel.SelectRests(), nil
	case "rhythms":
		return sel.SelectRhythms(), nil
	case "chord-notes":
		return sel.SelectChordNotes(), nil
	case "melody":
		return sel.SelectNonChordNotes(), nil
	case "top":
		return sel.SelectTop(), nil
	case "bottom":
		return sel.SelectBottom(), nil
	case "tune":
		return sel.SelectTune(), nil
	case "measures":
		return sel.SelectMeasures(), nil
	case "system":
		return sel.SelectSystem(), nil
	}
	return sel, fmt.Errorf("unknown selector %q", kind)
}

// fragments reassembles the source text of each cursor, in document
// order, descending only to the topmost selected node of each subtree.
func fragments(sel stave.Selection) []string {
	out := make([]string, 0, len(sel.Cursors))
	for _, cur := range sel.Cursors {
		var b strings.Builder
		var emit func(n *cst.Node)
		emit = func(n *cst.Node) {
			if cur[n.ID] {
				b.WriteString(abc.Text(n))
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				emit(c)
			}
		}
		emit(sel.Root)
		out = append(out, b.String())
	}
	return out
}

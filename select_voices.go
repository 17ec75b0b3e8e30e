package stave

import (
	"strings"

	"github.com/jward/stave/cst"
)

// SelectVoices selects contiguous runs of tune-body content belonging to
// the queried voice ids. The query is split on spaces, commas, and tabs;
// "default" names the unmarked voice "" and is dropped from a multi-id
// query unless nothing else remains. The walk tracks the current voice
// through V: info lines and inline fields (the marker's id is the first
// whitespace-delimited word of its value; a marker with no extractable
// id is ignored). A run is flushed whenever the matching voice changes
// — even between two targets — or a node falls out of scope or does not
// match. Voices reset to the default at the start of each tune body.
//
// If no node ever matched, the input Selection is returned unchanged,
// which distinguishes "voice absent" from "voice present but empty".
func (s Selection) SelectVoices(query string) Selection {
	targets := parseVoiceTargets(query)
	targetSet := make(map[string]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	ids, hasScope := s.scopeSet()

	var out []Cursor
	run := make(Cursor)
	runVoice := ""
	matched := false
	flush := func() {
		if len(run) > 0 {
			out = append(out, run)
			run = make(Cursor)
		}
	}

	for _, body := range cst.FindByTag(s.Root, cst.TagTuneBody) {
		current := "" // default voice at the start of each tune body

		var visit func(n *cst.Node)
		visit = func(n *cst.Node) {
			switch {
			case n.Tag == cst.TagSystem || n.Tag == cst.TagMusicCode:
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					visit(c)
				}
			case isVoiceMarker(n):
				if id, ok := markerVoiceID(n); ok && id != current {
					flush()
					current = id
				}
			case isVoiceContent(n):
				if targetSet[current] && cst.InScope(n, ids, hasScope) {
					if len(run) > 0 && runVoice != current {
						flush()
					}
					run[n.ID] = true
					runVoice = current
					matched = true
				} else {
					flush()
				}
			}
		}

		for c := body.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
		flush()
	}

	if !matched {
		return s
	}
	return s.withCursors(out)
}

// isVoiceContent reports whether a node counts as voice-owned content: a
// music element, barline, annotation, or a non-voice field. Whitespace,
// EOL tokens, and comments are neutral — they neither match nor flush.
func isVoiceContent(n *cst.Node) bool {
	if n.Tag.IsMusicElement() {
		return true
	}
	switch n.Tag {
	case cst.TagBarLine, cst.TagAnnotation, cst.TagYSpacer:
		return true
	case cst.TagInfoLine, cst.TagInlineField:
		return !isVoiceMarker(n)
	}
	return false
}

// parseVoiceTargets splits and normalizes a voice query: dedupe in
// order, "default" becomes "", and the default voice is dropped from a
// multi-id query unless it is all that remains.
func parseVoiceTargets(query string) []string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	var targets []string
	seen := make(map[string]bool)
	for _, f := range fields {
		if f == "default" {
			f = ""
		}
		if !seen[f] {
			seen[f] = true
			targets = append(targets, f)
		}
	}
	if len(targets) > 1 {
		var named []string
		for _, t := range targets {
			if t != "" {
				named = append(named, t)
			}
		}
		if len(named) > 0 {
			targets = named
		}
	}
	return targets
}

package stave

import (
	"strings"

	"github.com/jward/stave/cst"
)

// infoHeader returns the header token lexeme of an Info_line or
// Inline_field ("V:", "K:", ...), or "".
func infoHeader(n *cst.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Tok != nil && c.Tok.Type == cst.TokInfoHeader {
			return c.Tok.Lexeme
		}
	}
	return ""
}

// infoValue returns the value token lexeme of an Info_line or
// Inline_field, or "".
func infoValue(n *cst.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Tok != nil && c.Tok.Type == cst.TokInfoString {
			return c.Tok.Lexeme
		}
	}
	return ""
}

// isVoiceMarker reports whether n is an Info_line or Inline_field whose
// header starts with "V:". Such a marker switches the logical voice
// context for subsequent content.
func isVoiceMarker(n *cst.Node) bool {
	if n.Tag != cst.TagInfoLine && n.Tag != cst.TagInlineField {
		return false
	}
	return strings.HasPrefix(infoHeader(n), "V:")
}

// markerVoiceID extracts the voice id a marker switches to: the first
// whitespace-delimited word of its value, ignoring trailing properties
// like "clef=treble". The second result is false when no id is
// extractable; callers treat such markers as not matching rather than
// erroring.
func markerVoiceID(n *cst.Node) (string, bool) {
	fields := strings.Fields(infoValue(n))
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// inlineField builds an Inline_field node "[hdr value]" out of synthetic
// tokens anchored to the given source line.
func inlineField(d *cst.Doc, hdr, value string, line int) *cst.Node {
	f := d.NewNode(cst.TagInlineField)
	cst.AppendChild(f, d.NewToken(cst.TokInlineLeftBracket, "[", line, cst.SentinelCol))
	cst.AppendChild(f, d.NewToken(cst.TokInfoHeader, hdr, line, cst.SentinelCol))
	cst.AppendChild(f, d.NewToken(cst.TokInfoString, value, line, cst.SentinelCol))
	cst.AppendChild(f, d.NewToken(cst.TokInlineRightBracket, "]", line, cst.SentinelCol))
	return f
}

// infoLine builds an Info_line node "hdrvalue\n" out of synthetic tokens.
func infoLine(d *cst.Doc, hdr, value string, line int) *cst.Node {
	n := d.NewNode(cst.TagInfoLine)
	cst.AppendChild(n, d.NewToken(cst.TokInfoHeader, hdr, line, cst.SentinelCol))
	cst.AppendChild(n, d.NewToken(cst.TokInfoString, value, line, cst.SentinelCol))
	cst.AppendChild(n, d.NewToken(cst.TokEOL, "\n", line, cst.SentinelCol))
	return n
}

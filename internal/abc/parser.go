// Package abc provides the collaborators the editing kernel consumes at
// its boundaries: a compact scanner/parser building the lossless CST
// from ABC notation text, exact-text reassembly, and a position-stamped
// key/meter/clef interpreter. It covers the common subset of ABC the
// kernel's tests and tools exercise; it is not a full ABC implementation.
package abc

import (
	"strings"

	"github.com/jward/stave/cst"
)

// Parse builds the lossless concrete syntax tree for src. Every byte of
// the input is retained in some token, so Text(root) reproduces src
// exactly. The returned Doc owns the document's id generator and must be
// used for any later node construction or cloning against this tree.
func Parse(src string) (*cst.Node, *cst.Doc, error) {
	doc := cst.NewDoc()
	p := &parser{doc: doc, lines: splitLines(src)}
	root := doc.NewNode(cst.TagRoot)
	p.parseFile(root)
	// Synthetic EOF marker: empty lexeme, sentinel position.
	cst.AppendChild(root, doc.NewToken(cst.TokEOF, "", len(p.lines), cst.SentinelCol))
	return root, doc, nil
}

// Text reassembles the exact source text of a subtree by concatenating
// token lexemes in document order.
func Text(n *cst.Node) string {
	var b strings.Builder
	cst.Visit(n, func(m *cst.Node) bool {
		if m.Tok != nil {
			b.WriteString(m.Tok.Lexeme)
		}
		return true
	})
	return b.String()
}

// line is one physical source line plus whether the original text
// terminated it with a newline.
type line struct {
	text string
	eol  bool
}

func splitLines(src string) []line {
	var out []line
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			out = append(out, line{text: src[start:i], eol: true})
			start = i + 1
		}
	}
	if start < len(src) {
		out = append(out, line{text: src[start:], eol: false})
	}
	return out
}

type parser struct {
	doc   *cst.Doc
	lines []line
	ln    int // current line index
}

func (p *parser) done() bool { return p.ln >= len(p.lines) }

func (p *parser) cur() line { return p.lines[p.ln] }

// eolToken emits the current line's terminator token, if any.
func (p *parser) eolToken(parent *cst.Node) {
	l := p.cur()
	if l.eol {
		cst.AppendChild(parent, p.doc.NewToken(cst.TokEOL, "\n", p.ln, len(l.text)))
	}
}

func (p *parser) parseFile(root *cst.Node) {
	for !p.done() {
		text := p.cur().text
		switch {
		case strings.HasPrefix(text, "X:"):
			cst.AppendChild(root, p.parseTune())
		case text == "":
			p.eolToken(root)
			p.ln++
		case strings.HasPrefix(text, "%"):
			cst.AppendChild(root, p.commentLeaf())
			p.eolToken(root)
			p.ln++
		default:
			// Free text outside any tune.
			cst.AppendChild(root, p.doc.NewToken(cst.TokFreeText, text, p.ln, 0))
			p.eolToken(root)
			p.ln++
		}
	}
}

// commentLeaf builds a leaf Comment node for the current line; the
// caller emits the line's EOL after it.
func (p *parser) commentLeaf() *cst.Node {
	text := p.cur().text
	n := p.doc.NewNode(cst.TagComment)
	n.Tok = &cst.Token{Lexeme: text, Type: cst.TokComment, Line: p.ln, Col: 0}
	return n
}

func (p *parser) parseTune() *cst.Node {
	tune := p.doc.NewNode(cst.TagTune)
	cst.AppendChild(tune, p.parseTuneHeader())
	if !p.done() && p.cur().text != "" {
		cst.AppendChild(tune, p.parseTuneBody())
	}
	return tune
}

// parseTuneHeader consumes info lines starting at X: through the K:
// line, which closes the header.
func (p *parser) parseTuneHeader() *cst.Node {
	header := p.doc.NewNode(cst.TagTuneHeader)
	for !p.done() {
		text := p.cur().text
		switch {
		case strings.HasPrefix(text, "%"):
			cst.AppendChild(header, p.commentLeaf())
			p.eolToken(header)
			p.ln++
		case isInfoLine(text):
			il := p.infoLineNode()
			cst.AppendChild(header, il)
			p.ln++
			if strings.HasPrefix(text, "K:") {
				return header
			}
		default:
			return header
		}
	}
	return header
}

func (p *parser) parseTuneBody() *cst.Node {
	body := p.doc.NewNode(cst.TagTuneBody)
	for !p.done() {
		text := p.cur().text
		switch {
		case text == "":
			return body
		case strings.HasPrefix(text, "X:"):
			return body
		case strings.HasPrefix(text, "%"):
			cst.AppendChild(body, p.commentLeaf())
			p.eolToken(body)
			p.ln++
		case isInfoLine(text):
			cst.AppendChild(body, p.infoLineNode())
			p.ln++
		default:
			cst.AppendChild(body, p.parseMusicLine())
			p.ln++
		}
	}
	return body
}

// isInfoLine matches "H:..." field lines: one ASCII letter, a colon.
func isInfoLine(text string) bool {
	if len(text) < 2 || text[1] != ':' {
		return false
	}
	c := text[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func (p *parser) infoLineNode() *cst.Node {
	text := p.cur().text
	n := p.doc.NewNode(cst.TagInfoLine)
	cst.AppendChild(n, p.doc.NewToken(cst.TokInfoHeader, text[:2], p.ln, 0))
	if len(text) > 2 {
		cst.AppendChild(n, p.doc.NewToken(cst.TokInfoString, text[2:], p.ln, 2))
	}
	p.eolToken(n)
	return n
}

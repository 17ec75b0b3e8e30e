package stave

import (
	"github.com/jward/stave/cst"
)

// SelectRange selects the nodes covering the half-open text range
// [(startLine, startCol), (endLine, endCol)). A node whose whole span is
// contained in the range is selected and its children skipped; a node
// entirely outside is skipped with its subtree; on partial overlap the
// walk recurses for a tighter match and, when no child matched, selects
// the node itself — this covers a sub-token cursor such as one character
// inside a multi-character token. Nodes with sentinel or missing
// positions are transparently descended into.
//
// The matched ids form a single cursor (one logical unit). When nothing
// overlaps, the result is a Selection with zero cursors.
func (s Selection) SelectRange(startLine, startCol, endLine, endCol int) Selection {
	ids, hasScope := s.scopeSet()
	cur := make(Cursor)

	selectable := func(n *cst.Node) bool {
		return cst.InScope(n, ids, hasScope)
	}

	var visit func(n *cst.Node) bool
	visit = func(n *cst.Node) bool {
		ft := cst.FirstToken(n)
		lt := cst.LastToken(n)
		if ft == nil || lt == nil {
			return false
		}
		if ft.Tok.Synthetic() || lt.Tok.Synthetic() {
			matchedChild := false
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if visit(c) {
					matchedChild = true
				}
			}
			return matchedChild
		}

		// Entirely outside the range: skip the subtree.
		if cst.ComparePositions(lt.Tok.Line, lt.Tok.EndCol(), startLine, startCol) <= 0 ||
			cst.ComparePositions(ft.Tok.Line, ft.Tok.Col, endLine, endCol) >= 0 {
			return false
		}

		// Fully contained: take the whole node, skip its children.
		contained := cst.ComparePositions(startLine, startCol, ft.Tok.Line, ft.Tok.Col) <= 0 &&
			cst.ComparePositions(lt.Tok.Line, lt.Tok.EndCol(), endLine, endCol) <= 0
		if contained && selectable(n) {
			cur[n.ID] = true
			return true
		}

		// Partial overlap (or contained but out of scope): look for a
		// tighter match below.
		matchedChild := false
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if visit(c) {
				matchedChild = true
			}
		}
		if !matchedChild && selectable(n) {
			cur[n.ID] = true
			return true
		}
		return matchedChild
	}
	visit(s.Root)

	if len(cur) == 0 {
		return s.withCursors(nil)
	}
	return s.withCursors([]Cursor{cur})
}

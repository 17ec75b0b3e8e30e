package stave

import (
	"github.com/jward/stave/cst"
)

// SelectSystem expands the Selection to whole systems. For each System
// node with any in-scope descendant (scope expanded to descendants
// first), the result holds one cursor with that System's full descendant
// set plus any immediately preceding Info_line siblings — Comment
// siblings are skipped over, and the scan stops at another System or any
// other node kind.
//
// A Selection with no explicit scope, or one in which no System matched,
// is returned unchanged.
func (s Selection) SelectSystem() Selection {
	ids, hasScope := s.scopeSet()
	if !hasScope {
		return s
	}

	var out []Cursor
	matched := false
	for _, body := range cst.FindByTag(s.Root, cst.TagTuneBody) {
		children := body.Children()
		for i, c := range children {
			if c.Tag != cst.TagSystem || !cst.HasDescendantIn(c, ids) {
				continue
			}
			cur := make(Cursor)
			addSubtree(cur, c)
			for j := i - 1; j >= 0; j-- {
				sib := children[j]
				if sib.Tag == cst.TagComment {
					continue
				}
				if sib.Tag == cst.TagInfoLine {
					addSubtree(cur, sib)
					continue
				}
				break
			}
			out = append(out, cur)
			matched = true
		}
	}

	if !matched {
		return s
	}
	return s.withCursors(out)
}

func addSubtree(cur Cursor, n *cst.Node) {
	cst.Visit(n, func(m *cst.Node) bool {
		cur[m.ID] = true
		return true
	})
}

package cst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func childTags(n *Node) []Tag {
	var out []Tag
	for _, c := range n.Children() {
		out = append(out, c.Tag)
	}
	return out
}

func TestInsertBefore_FrontAndMiddle(t *testing.T) {
	d := NewDoc()
	parent := d.NewNode(TagMusicCode)
	a := d.NewNode(TagNote)
	b := d.NewNode(TagRest)
	AppendChild(parent, a)
	AppendChild(parent, b)

	front := d.NewNode(TagBarLine)
	InsertBefore(parent, nil, front)
	assert.Equal(t, []Tag{TagBarLine, TagNote, TagRest}, childTags(parent))

	mid := d.NewNode(TagChord)
	InsertBefore(parent, a, mid)
	assert.Equal(t, []Tag{TagBarLine, TagNote, TagChord, TagRest}, childTags(parent))
}

func TestRemoveChild_DetachesSubtree(t *testing.T) {
	d := NewDoc()
	parent := d.NewNode(TagMusicCode)
	a := d.NewNode(TagNote)
	b := d.NewNode(TagRest)
	c := d.NewNode(TagBarLine)
	AppendChild(parent, a)
	AppendChild(parent, b)
	AppendChild(parent, c)

	RemoveChild(parent, a, b)
	assert.Equal(t, []Tag{TagNote, TagBarLine}, childTags(parent))
	assert.Nil(t, b.NextSibling)

	RemoveChild(parent, nil, a)
	assert.Equal(t, []Tag{TagBarLine}, childTags(parent))
}

func TestReplaceChild_KeepsSiblingLink(t *testing.T) {
	d := NewDoc()
	parent := d.NewNode(TagMusicCode)
	a := d.NewNode(TagNote)
	b := d.NewNode(TagRest)
	AppendChild(parent, a)
	AppendChild(parent, b)

	repl := d.NewNode(TagChord)
	ReplaceChild(parent, nil, a, repl)
	assert.Equal(t, []Tag{TagChord, TagRest}, childTags(parent))
	assert.Nil(t, a.NextSibling)
}

func TestCloneSubtreeMap_FreshIDsAndFullMapping(t *testing.T) {
	d := NewDoc()
	note := d.NewNode(TagNote)
	pitch := d.NewNode(TagPitch)
	AppendChild(pitch, d.NewToken(TokNoteLetter, "G", 3, 7))
	AppendChild(note, pitch)

	clone, mapping := CloneSubtreeMap(d, note)
	require.NotNil(t, clone)
	assert.Len(t, mapping, Count(note))

	// Same shape, same lexemes, disjoint ids.
	origIDs := make(IDSet)
	Visit(note, func(n *Node) bool { origIDs[n.ID] = true; return true })
	Visit(clone, func(n *Node) bool {
		assert.False(t, origIDs[n.ID], "clone reused id %d", n.ID)
		return true
	})

	ct := FirstToken(clone)
	require.NotNil(t, ct)
	assert.Equal(t, "G", ct.Tok.Lexeme)
	assert.Equal(t, 3, ct.Tok.Line)

	// Token structs are copies, not shared.
	ct.Tok.Lexeme = "A"
	assert.Equal(t, "G", FirstToken(note).Tok.Lexeme)

	// The mapping points at the clones.
	assert.Same(t, clone, mapping[note.ID])
}

func TestCloneSubtree_NilInput(t *testing.T) {
	d := NewDoc()
	assert.Nil(t, CloneSubtree(d, nil))
}

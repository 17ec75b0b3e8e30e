package cst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandToDescendants_CoversSubtrees(t *testing.T) {
	_, mc := newTestTree(t)
	note := FindFirstByTag(mc, TagNote)
	require.NotNil(t, note)

	expanded := ExpandToDescendants(mc, NewIDSet(note.ID))
	assert.Equal(t, Count(note), len(expanded))
	Visit(note, func(n *Node) bool {
		assert.True(t, expanded[n.ID])
		return true
	})

	rest := FindFirstByTag(mc, TagRest)
	assert.False(t, expanded[rest.ID])
}

func TestExpandToDescendants_UnreachableIDDropped(t *testing.T) {
	_, mc := newTestTree(t)
	expanded := ExpandToDescendants(mc, NewIDSet(12345))
	assert.Empty(t, expanded)
}

func TestHasDescendantIn(t *testing.T) {
	_, mc := newTestTree(t)
	rest := FindFirstByTag(mc, TagRest)
	restTok := FirstToken(rest)

	assert.True(t, HasDescendantIn(mc, NewIDSet(restTok.ID)))
	assert.True(t, HasDescendantIn(rest, NewIDSet(rest.ID)))
	assert.False(t, HasDescendantIn(rest, NewIDSet(mc.ID)))
}

func TestInScope_NoScopeMeansEverything(t *testing.T) {
	_, mc := newTestTree(t)
	note := FindFirstByTag(mc, TagNote)

	assert.True(t, InScope(note, nil, false))
	assert.False(t, InScope(note, NewIDSet(mc.ID), true))
	assert.True(t, InScope(note, NewIDSet(note.ID), true))
}

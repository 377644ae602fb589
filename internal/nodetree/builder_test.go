package nodetree

import (
	"testing"

	appErrors "moncollect/internal/errors"
	"moncollect/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNodes() []store.Node {
	return []store.Node{
		{ID: 4, PID: 2, Ident: "nginx", Path: "corp.web.nginx"},
		{ID: 1, PID: 0, Ident: "corp", Path: "corp"},
		{ID: 3, PID: 1, Ident: "db", Path: "corp.db"},
		{ID: 2, PID: 1, Ident: "web", Path: "corp.web"},
		{ID: 5, PID: 0, Ident: "alpha", Path: "alpha"},
	}
}

func TestBuilderBuildTree(t *testing.T) {
	roots, err := NewBuilder().Build(sampleNodes())
	require.NoError(t, err)
	require.Len(t, roots, 2)

	assert.Equal(t, "alpha", roots[0].Path)
	assert.True(t, roots[0].Leaf)

	corp := roots[1]
	assert.Equal(t, int64(1), corp.ID)
	assert.False(t, corp.Leaf)
	require.Len(t, corp.Children, 2)
	assert.Equal(t, "corp.db", corp.Children[0].Path)
	assert.Equal(t, "corp.web", corp.Children[1].Path)

	nginx := Find(roots, 4)
	require.NotNil(t, nginx)
	assert.Equal(t, 2, nginx.Depth)
	assert.True(t, nginx.Leaf)
	assert.Equal(t, "corp.web", nginx.Parent.Path)
	assert.Equal(t, "corp.web.nginx", nginx.Label())

	assert.Nil(t, Find(roots, 99))
}

func TestBuilderOrphansBecomeRoots(t *testing.T) {
	roots, err := NewBuilder().Build([]store.Node{
		{ID: 7, PID: 42, Ident: "lost", Path: "gone.lost"},
	})
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, 0, roots[0].Depth)
}

func TestBuilderEmpty(t *testing.T) {
	roots, err := NewBuilder().Build(nil)
	require.NoError(t, err)
	assert.Empty(t, roots)
	assert.Empty(t, Flatten(roots))
}

func TestBuilderDetectsCycles(t *testing.T) {
	_, err := NewBuilder().Build([]store.Node{
		{ID: 1, PID: 2, Path: "a"},
		{ID: 2, PID: 3, Path: "b"},
		{ID: 3, PID: 1, Path: "c"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidNodeTree))
	assert.Contains(t, err.Error(), "cyclic parent chain")
}

func TestBuilderRejectsDuplicateIDs(t *testing.T) {
	_, err := NewBuilder().Build([]store.Node{
		{ID: 1, Path: "a"},
		{ID: 1, Path: "b"},
	})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidNodeTree))
}

func TestFlattenDepthFirst(t *testing.T) {
	roots, err := NewBuilder().Build(sampleNodes())
	require.NoError(t, err)

	opts := Flatten(roots)
	assert.Equal(t, []string{"alpha", "corp", "corp.db", "corp.web", "corp.web.nginx"}, Paths(opts))
	assert.Equal(t, Option{ID: 4, Path: "corp.web.nginx", Depth: 2, Leaf: true}, opts[4])
}

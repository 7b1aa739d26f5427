package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devfmt/internal/jsonfmt"
)

func mustParse(t *testing.T, text string) *Node {
	t.Helper()
	v, err := jsonfmt.Parse(text)
	require.NoError(t, err)
	return Build(v)
}

func TestBuild_PathsAndOrder(t *testing.T) {
	root := mustParse(t, `{"users": [{"name": "Ann"}], "total": 1}`)

	require.Len(t, root.Children, 2)
	assert.Equal(t, "$", root.Path)
	assert.Equal(t, KindObject, root.Kind)

	users := root.Children[0]
	assert.Equal(t, "$.users", users.Path)
	assert.Equal(t, KindArray, users.Kind)

	name := users.Children[0].Children[0]
	assert.Equal(t, "$.users[0].name", name.Path)
	assert.Equal(t, KindString, name.Kind)

	assert.Equal(t, "$.total", root.Children[1].Path)
	assert.Equal(t, KindNumber, root.Children[1].Kind)
}

func TestFlatten_DepthFirst(t *testing.T) {
	root := mustParse(t, `{"a": {"b": 1}, "c": 2}`)
	var paths []string
	for _, n := range Flatten(root) {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{"$", "$.a", "$.a.b", "$.c"}, paths)
}

func TestNode_TextAndPair(t *testing.T) {
	root := mustParse(t, `{"a": {"b": 1}}`)
	a := root.Children[0]

	text, err := a.Text(2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1\n}", text)

	pair, err := a.Pair(2)
	require.NoError(t, err)
	assert.Equal(t, "\"a\": {\n  \"b\": 1\n}", pair)
}

func TestNode_PairFallsBackForArrayElements(t *testing.T) {
	root := mustParse(t, `[10, 20]`)
	first := root.Children[0]

	pair, err := first.Pair(2)
	require.NoError(t, err)
	assert.Equal(t, "10", pair)
}

func TestFind_KeysAndValues(t *testing.T) {
	root := mustParse(t, `{"Name": "banana", "count": 2}`)

	matches := Find(root, "an")
	require.Len(t, matches, 2)

	assert.True(t, matches[0].InKey)
	assert.Equal(t, "$.Name", matches[0].Node.Path)
	assert.Equal(t, []int{1}, matches[0].Offsets)

	assert.False(t, matches[1].InKey)
	assert.Equal(t, "$.Name", matches[1].Node.Path)
	assert.Equal(t, []int{2, 4}, matches[1].Offsets)

	assert.Empty(t, Find(root, ""))
	assert.Empty(t, Find(root, "zzz"))
}

func TestNode_Preview(t *testing.T) {
	root := mustParse(t, `{"a": [1, 2, 3], "b": {"k": null}, "s": "hi"}`)

	assert.Equal(t, "{3 keys}", root.Preview())
	assert.Equal(t, "[3 items]", root.Children[0].Preview())
	assert.Equal(t, "{1 key}", root.Children[1].Preview())
	assert.Equal(t, `"hi"`, root.Children[2].Preview())
}

package resulttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(t *Tree) []string {
	out := make([]string, 0, t.Len())
	for _, e := range t.Entries {
		out = append(out, e.Key)
	}
	return out
}

func TestParse_PreservesOrderAtEveryLevel(t *testing.T) {
	payload := `{
		"zebra mug": {"tea towel": "81.2%", "apple tin": "64.0%", "mug": "12.5%"},
		"apple tin": {"zebra mug": "64.0%"}
	}`
	tree, err := Parse([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, []string{"zebra mug", "apple tin"}, keys(tree))
	first, ok := tree.Get("zebra mug")
	require.True(t, ok)
	require.False(t, first.IsLeaf())
	assert.Equal(t, []string{"tea towel", "apple tin", "mug"}, keys(first.Child))
	assert.Equal(t, "81.2%", first.Child.Entries[0].Value)
}

func TestParse_ScalarsArraysAndEmptyObjects(t *testing.T) {
	payload := `{"n": 0.92, "ok": true, "none": null, "empty": {}, "list": [{"ds": "2011-12-10", "yhat": 1.5}]}`
	tree, err := Parse([]byte(payload))
	require.NoError(t, err)

	n, _ := tree.Get("n")
	assert.Equal(t, "0.92", n.Value)
	ok, _ := tree.Get("ok")
	assert.Equal(t, "true", ok.Value)
	none, _ := tree.Get("none")
	assert.Equal(t, "null", none.Value)

	empty, _ := tree.Get("empty")
	require.False(t, empty.IsLeaf())
	assert.Equal(t, 0, empty.Child.Len())

	list, _ := tree.Get("list")
	require.False(t, list.IsLeaf())
	assert.Equal(t, []string{"0"}, keys(list.Child))
	record := list.Child.Entries[0].Child
	assert.Equal(t, []string{"ds", "yhat"}, keys(record))
	assert.Equal(t, "1.5", record.Entries[1].Value)
}

func TestParse_TopLevelArrayAndScalar(t *testing.T) {
	tree, err := Parse([]byte(`["a", "b"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, keys(tree))

	tree, err = Parse([]byte(`"hello"`))
	require.NoError(t, err)
	v, _ := tree.Get("value")
	assert.Equal(t, "hello", v.Value)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	tree, err := Parse([]byte(`{"a": "1", "b": "2", "a": "3"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys(tree))
	a, _ := tree.Get("a")
	assert.Equal(t, "3", a.Value)
}

func TestErrorTree(t *testing.T) {
	tree := ErrorTree("Failed to fetch recommendations")
	msg, ok := tree.ErrorMessage()
	require.True(t, ok)
	assert.Equal(t, "Failed to fetch recommendations", msg)

	normal := New()
	normal.Set("error", "x")
	normal.Set("other", "y")
	_, ok = normal.ErrorMessage()
	assert.False(t, ok)
}

func TestClone_IsDeep(t *testing.T) {
	tree := New()
	inner := New()
	inner.Set("itemA", "0.92")
	tree.SetChild("User42", inner)

	dup := tree.Clone()
	dup.Entries[0].Child.Entries[0].Value = "changed"

	assert.Equal(t, "0.92", tree.Entries[0].Child.Entries[0].Value)
	assert.Equal(t, 1, tree.Leaves())
}

func TestNilTreeIsEmpty(t *testing.T) {
	var tree *Tree
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.Leaves())
	assert.Nil(t, tree.Clone())
	_, ok := tree.Get("x")
	assert.False(t, ok)
}

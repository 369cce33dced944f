package blockconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTree(t *testing.T, m map[string]any) *Tree {
	t.Helper()
	tree, err := FromMap(m)
	require.NoError(t, err)
	return tree
}

func TestTree_Get_NestedPath(t *testing.T) {
	tree := mustTree(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 5},
		},
	})

	v, ok := tree.Get("a.b.c")
	require.True(t, ok)
	s, _ := v.Scalar()
	assert.Equal(t, 5, s)

	_, ok = tree.Get("a.x.c")
	assert.False(t, ok)

	sub, ok := tree.Get("a")
	require.True(t, ok)
	assert.Equal(t, KindMapping, sub.Kind())
	assert.Equal(t, map[string]any{"b": map[string]any{"c": 5}}, sub.Native())
}

func TestTree_Get(t *testing.T) {
	tree := mustTree(t, map[string]any{
		"title":   "Hero",
		"enabled": false,
		"empty":   nil,
		"count":   uint64(3),
		"items": []any{
			map[string]any{"title": "first"},
			map[string]any{"title": "second"},
		},
		"dotted.key": "top level only via path",
	})

	tests := []struct {
		name   string
		key    string
		want   any
		wantOK bool
	}{
		{"top level string", "title", "Hero", true},
		{"false is present", "enabled", false, true},
		{"null is absent", "empty", nil, false},
		{"missing top level", "nope", nil, false},
		{"descend into scalar", "title.x", nil, false},
		{"sequence index", "items.1.title", "second", true},
		{"sequence out of range", "items.2.title", nil, false},
		{"sequence non numeric", "items.first", nil, false},
		{"sequence signed index", "items.+1.title", nil, false},
		{"sequence leading zero", "items.01.title", nil, false},
		{"null intermediate", "empty.x", nil, false},
		{"empty segment", "title.", nil, false},
		{"empty key", "", nil, false},
		{"number", "count", uint64(3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := tree.Get(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, v.Native())
			} else {
				assert.True(t, v.IsNull())
			}
		})
	}
}

func TestTree_EmptyAndNil(t *testing.T) {
	var nilTree *Tree
	_, ok := nilTree.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, nilTree.Len())
	assert.Empty(t, nilTree.Native())

	empty := Empty()
	_, ok = empty.Get("a.b")
	assert.False(t, ok)
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Keys())
}

func TestNewTree_RejectsNonMappingRoot(t *testing.T) {
	_, err := NewTree(Sequence(Scalar(1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a mapping")

	tree, err := NewTree(Null())
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())
}

func TestTree_IsImmutable(t *testing.T) {
	src := map[string]any{"a": map[string]any{"b": "c"}}
	tree := mustTree(t, src)

	// Mutating the source after construction does not leak in.
	src["a"].(map[string]any)["b"] = "changed"

	// Mutating accessor results does not leak in either.
	sub, _ := tree.Get("a")
	m, _ := sub.Map()
	m["b"] = Scalar("changed")
	tree.Native()["a"] = "changed"

	v, ok := tree.Get("a.b")
	require.True(t, ok)
	assert.Equal(t, "c", v.String())
}

func TestFromNative_TypedContainers(t *testing.T) {
	v, err := FromNative(map[any]any{"k": []string{"x", "y"}, 1: 2.5})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "k"}, v.Keys())
	list, ok := v.mapping["k"].List()
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "y", list[1].String())
	assert.Equal(t, "2.5", v.mapping["1"].String())
}

func TestFromNative_Unsupported(t *testing.T) {
	_, err := FromNative(map[string]any{"fn": func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "fn"`)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "scalar", KindScalar.String())
	assert.Equal(t, "sequence", KindSequence.String())
	assert.Equal(t, "mapping", KindMapping.String())
}

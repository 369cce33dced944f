package blockconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator splits a lookup key into nesting levels.
const Separator = "."

// Tree is the immutable configuration of one block. The zero Tree is empty.
type Tree struct {
	root Value
}

// Empty returns a Tree with no keys.
func Empty() *Tree {
	return &Tree{root: Mapping(nil)}
}

// NewTree builds a Tree from a root Value, which must be a mapping or null.
func NewTree(root Value) (*Tree, error) {
	switch root.Kind() {
	case KindNull:
		return Empty(), nil
	case KindMapping:
		return &Tree{root: root}, nil
	default:
		return nil, fmt.Errorf("config root must be a mapping, got %s", root.Kind())
	}
}

// FromMap builds a Tree from decoded data.
func FromMap(m map[string]any) (*Tree, error) {
	root, err := FromNative(m)
	if err != nil {
		return nil, err
	}
	return NewTree(root)
}

// Get resolves key against the tree.
//
// A key without a separator is a top-level lookup. Otherwise the key is split
// on "." and each segment descends one level; decimal segments index into
// sequences. Any missing segment, a segment applied to a scalar, or a null
// value yields (Value{}, false). Get never fails.
func (t *Tree) Get(key string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}

	if !strings.Contains(key, Separator) {
		return present(t.root.child(key))
	}

	cur := t.root
	for _, segment := range strings.Split(key, Separator) {
		next, ok := present(cur.child(segment))
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Has reports whether key resolves to a non-null value.
func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Keys returns the sorted top-level keys.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	return t.root.Keys()
}

// Len returns the number of top-level keys.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.root.mapping)
}

// Root returns the tree as a mapping Value.
func (t *Tree) Root() Value {
	if t == nil {
		return Mapping(nil)
	}
	return t.root
}

// Native returns a deep copy of the tree as plain Go values.
func (t *Tree) Native() map[string]any {
	if t == nil {
		return map[string]any{}
	}
	out, _ := t.root.Native().(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

// present treats an explicit null as absent.
func present(v Value, ok bool) (Value, bool) {
	if !ok || v.IsNull() {
		return Value{}, false
	}
	return v, true
}

func parseIndex(segment string) (int, bool) {
	if segment == "" || (len(segment) > 1 && segment[0] == '0') {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return idx, true
}

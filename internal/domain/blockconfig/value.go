// Package blockconfig models a block's declarative configuration as an
// immutable tree and resolves dot-separated lookups against it.
package blockconfig

import (
	"fmt"
	"reflect"
	"sort"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	// KindNull is an explicit null (or the zero Value).
	KindNull Kind = iota
	// KindScalar holds a string, bool or number.
	KindScalar
	// KindSequence holds an ordered list of Values.
	KindSequence
	// KindMapping holds string-keyed Values.
	KindMapping
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

// Value is one node of a configuration tree.
// Values are immutable: accessors hand out copies of composite contents.
type Value struct {
	scalar  any
	seq     []Value
	mapping map[string]Value
	kind    Kind
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// Scalar wraps a string, bool or number.
func Scalar(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindScalar, scalar: v}
}

// Sequence wraps a list of Values.
func Sequence(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindSequence, seq: cp}
}

// Mapping wraps string-keyed Values.
func Mapping(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMapping, mapping: cp}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Scalar returns the scalar held by v.
func (v Value) Scalar() (any, bool) {
	if v.kind != KindScalar {
		return nil, false
	}
	return v.scalar, true
}

// String returns the scalar rendered with fmt, or "" for non-scalars.
func (v Value) String() string {
	if v.kind != KindScalar {
		return ""
	}
	if s, ok := v.scalar.(string); ok {
		return s
	}
	return fmt.Sprint(v.scalar)
}

// Map returns a copy of the mapping held by v.
func (v Value) Map() (map[string]Value, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	cp := make(map[string]Value, len(v.mapping))
	for k, child := range v.mapping {
		cp[k] = child
	}
	return cp, true
}

// List returns a copy of the sequence held by v.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	cp := make([]Value, len(v.seq))
	copy(cp, v.seq)
	return cp, true
}

// Keys returns the sorted keys of a mapping, or nil.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.mapping))
	for k := range v.mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Native converts v back to plain Go values: map[string]any, []any, scalars, nil.
func (v Value) Native() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Native()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.mapping))
		for k, child := range v.mapping {
			out[k] = child.Native()
		}
		return out
	default:
		return nil
	}
}

// child returns the direct child addressed by segment.
func (v Value) child(segment string) (Value, bool) {
	switch v.kind {
	case KindMapping:
		c, ok := v.mapping[segment]
		return c, ok
	case KindSequence:
		idx, ok := parseIndex(segment)
		if !ok || idx >= len(v.seq) {
			return Value{}, false
		}
		return v.seq[idx], true
	default:
		return Value{}, false
	}
}

// FromNative converts decoded data (as produced by YAML, JSON or HCL decoders)
// into a Value.
func FromNative(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Scalar(t), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, raw := range t {
			child, err := FromNative(raw)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = child
		}
		return Value{kind: KindMapping, mapping: m}, nil
	case []any:
		seq := make([]Value, len(t))
		for i, raw := range t {
			child, err := FromNative(raw)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			seq[i] = child
		}
		return Value{kind: KindSequence, seq: seq}, nil
	}

	return fromReflect(reflect.ValueOf(in))
}

// fromReflect handles typed maps and slices that the fast path misses,
// such as map[any]any or []string.
func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return fromReflect(rv.Elem())
	case reflect.Map:
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			child, err := FromNative(iter.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			m[key] = child
		}
		return Value{kind: KindMapping, mapping: m}, nil
	case reflect.Slice, reflect.Array:
		seq := make([]Value, rv.Len())
		for i := range seq {
			child, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			seq[i] = child
		}
		return Value{kind: KindSequence, seq: seq}, nil
	case reflect.String:
		return Scalar(rv.String()), nil
	case reflect.Bool:
		return Scalar(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Scalar(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Scalar(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Scalar(rv.Float()), nil
	case reflect.Struct:
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return Scalar(s.String()), nil
		}
	}
	return Value{}, fmt.Errorf("unsupported config value of type %s", rv.Type())
}

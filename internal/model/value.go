package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ValueKind tags the variant held by a Value.
type ValueKind string

const (
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindBool   ValueKind = "bool"
	KindList   ValueKind = "list"
	KindMap    ValueKind = "map"
	KindNull   ValueKind = "null"
)

// Value is a tagged dynamic value used for component props/state and logic
// node data. Generators switch on Kind instead of reflecting over untyped
// blobs. The JSON form is the natural one: "x", 1, true, [...], {...}.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	List []Value
	Map  map[string]Value
}

// ValueMap is an open-ended key-value payload with tagged values.
type ValueMap map[string]Value

// String returns a string-kinded Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a number-kinded Value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool returns a bool-kinded Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// ListOf returns a list-kinded Value.
func ListOf(vs ...Value) Value { return Value{Kind: KindList, List: vs} }

// MapOf returns a map-kinded Value.
func MapOf(m map[string]Value) Value { return Value{Kind: KindMap, Map: m} }

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// FromAny converts a decoded JSON value (string, float64, bool, []any,
// map[string]any, nil) into a tagged Value.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("converting number %q: %w", x, err)
		}
		return Number(f), nil
	case []any:
		list := make([]Value, 0, len(x))
		for _, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			list = append(list, ev)
		}
		return ListOf(list...), nil
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = ev
		}
		return MapOf(m), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// ToAny converts a Value back to its plain Go representation.
func (v Value) ToAny() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindList:
		out := make([]any, 0, len(v.List))
		for _, e := range v.List {
			out = append(out, e.ToAny())
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.Map))
		for k, e := range v.Map {
			out[k] = e.ToAny()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep equality of two Values.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for k, e := range v.Map {
			oe, ok := o.Map[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// SortedKeys returns the map's keys in lexical order. Generators iterate in
// this order so output is deterministic.
func (m ValueMap) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the map.
func (m ValueMap) Clone() ValueMap {
	if m == nil {
		return nil
	}
	out := make(ValueMap, len(m))
	for k, v := range m {
		out[k] = v.clone()
	}
	return out
}

func (v Value) clone() Value {
	c := v
	if v.List != nil {
		c.List = make([]Value, len(v.List))
		for i, e := range v.List {
			c.List[i] = e.clone()
		}
	}
	if v.Map != nil {
		c.Map = make(map[string]Value, len(v.Map))
		for k, e := range v.Map {
			c.Map[k] = e.clone()
		}
	}
	return c
}

// GetString returns the string held at key, if present and string-kinded.
func (m ValueMap) GetString(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

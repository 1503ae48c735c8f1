package core

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a structured, JSON-compatible value: one of Null, Text, Number,
// Bool, Array or Object. The zero Value is Null.
type Value struct {
	kind   Kind
	text   string
	number float64
	flag   bool
	items  []Value
	fields map[string]Value
}

func Null() Value                { return Value{} }
func Text(s string) Value        { return Value{kind: KindText, text: s} }
func Number(f float64) Value     { return Value{kind: KindNumber, number: f} }
func Bool(b bool) Value          { return Value{kind: KindBool, flag: b} }
func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

// Object wraps fields. A nil map yields an empty object.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, fields: fields}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsText() (string, bool)   { return v.text, v.kind == KindText }
func (v Value) AsNumber() (float64, bool) { return v.number, v.kind == KindNumber }
func (v Value) AsBool() (bool, bool)      { return v.flag, v.kind == KindBool }
func (v Value) AsArray() ([]Value, bool)  { return v.items, v.kind == KindArray }

func (v Value) AsObject() (map[string]Value, bool) {
	return v.fields, v.kind == KindObject
}

// Field looks up key on an Object. It reports false for missing keys and for non-objects.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.fields[key]
	return f, ok
}

// Keys returns the sorted keys of an Object, or nil.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromAny converts a decoded JSON tree (as produced by encoding/json or a
// compatible decoder, with or without UseNumber) into a Value.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case string:
		return Text(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return Array(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			fields[k] = v
		}
		return Object(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}

// Any converts v back into plain Go values suitable for a JSON encoder.
func (v Value) Any() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.number
	case KindBool:
		return v.flag
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Any()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.fields))
		for k, item := range v.fields {
			out[k] = item.Any()
		}
		return out
	default:
		return nil
	}
}

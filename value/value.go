package value

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the JSON null. It is the Kind of the zero Value.
	KindNull Kind = iota
	// KindBool is true or false.
	KindBool
	// KindNumber is a JSON number, kept as its literal text.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is an insertion-ordered mapping from string keys to values.
	KindObject
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsScalar reports whether the kind terminates a path: null, bool, number, or string.
func (k Kind) IsScalar() bool {
	return k <= KindString
}

// Value is a node of a structured-data tree. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string // string content or number literal
	arr  []Value
	obj  *Map
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a number value holding the literal n.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, s: string(n)}
}

// Int returns a number value for i.
func Int(i int64) Value {
	return Value{kind: KindNumber, s: strconv.FormatInt(i, 10)}
}

// Float returns a number value for f. NaN and infinities have no JSON
// representation and fail when the value is marshaled.
func Float(f float64) Value {
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array value holding elems. The slice is not copied.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arr: elems}
}

// Object returns an object value backed by m. A nil m is an empty object.
func Object(m *Map) Value {
	if m == nil {
		m = NewMap(0)
	}
	return Value{kind: KindObject, obj: m}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// BoolValue returns the boolean held by v, or false for other kinds.
func (v Value) BoolValue() bool {
	return v.kind == KindBool && v.b
}

// NumberValue returns the number literal held by v, or "" for other kinds.
func (v Value) NumberValue() json.Number {
	if v.kind != KindNumber {
		return ""
	}
	return json.Number(v.s)
}

// StringValue returns the string held by v, or "" for other kinds.
func (v Value) StringValue() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Elements returns the elements of an array value, or nil for other kinds.
// Callers must not modify the returned slice.
func (v Value) Elements() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Members returns the map of an object value, or nil for other kinds.
func (v Value) Members() *Map {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Equal reports whether v and o hold the same tree. Number literals are
// compared textually, so 1 and 1.0 differ. Object key order is significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber, KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	default:
		panic(fmt.Sprintf("value: unknown kind %d", v.kind))
	}
}

// String returns the compact JSON text of v, for debugging.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}
	return string(data)
}

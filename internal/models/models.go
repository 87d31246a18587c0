// Package models holds the in-memory representation of a parsed JSON document
// and the report records produced by the processing packages.
package models

// Kind identifies which variant of the JSON value union a Value holds.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one JSON value: null, boolean, number, string, array or object.
// The zero Value is null. Values are immutable once constructed; accessors
// that expose children return copies.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *object
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

type object struct {
	members []Member
	index   map[string]int
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: BoolKind, b: b} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{kind: NumberKind, n: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: StringKind, s: s} }

// ArrayValue builds an array from the given elements. The slice is copied.
func ArrayValue(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{kind: ArrayKind, arr: arr}
}

// ObjectValue builds an object from members in order. A repeated key keeps
// the position of its first occurrence and takes the value of its last.
func ObjectValue(members ...Member) Value {
	b := NewObjectBuilder(len(members))
	for _, m := range members {
		b.Set(m.Key, m.Value)
	}
	return b.Build()
}

// Field is shorthand for Member{Key: key, Value: v}.
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// ObjectBuilder accumulates members for a single object.
type ObjectBuilder struct {
	obj *object
}

// NewObjectBuilder returns a builder with room for sizeHint members.
func NewObjectBuilder(sizeHint int) *ObjectBuilder {
	return &ObjectBuilder{obj: &object{
		members: make([]Member, 0, sizeHint),
		index:   make(map[string]int, sizeHint),
	}}
}

// Set adds key or replaces its value in place.
func (b *ObjectBuilder) Set(key string, v Value) {
	if i, ok := b.obj.index[key]; ok {
		b.obj.members[i].Value = v
		return
	}
	b.obj.index[key] = len(b.obj.members)
	b.obj.members = append(b.obj.members, Member{Key: key, Value: v})
}

// Build returns the object. The builder must not be used afterwards.
func (b *ObjectBuilder) Build() Value {
	obj := b.obj
	b.obj = nil
	return Value{kind: ObjectKind, obj: obj}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == NullKind }

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.kind == ObjectKind }

// IsArray reports whether v is an array.
func (v Value) IsArray() bool { return v.kind == ArrayKind }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool { return v.kind == ArrayKind || v.kind == ObjectKind }

// Bool returns the boolean held by v, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Float returns the number held by v, or 0 for other kinds.
func (v Value) Float() float64 { return v.n }

// Text returns the string held by v, or "" for other kinds.
func (v Value) Text() string { return v.s }

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.arr)
	case ObjectKind:
		return len(v.obj.members)
	default:
		return 0
	}
}

// Index returns the i-th array element.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Items returns a copy of the array elements, or nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != ArrayKind {
		return nil
	}
	items := make([]Value, len(v.arr))
	copy(items, v.arr)
	return items
}

// Get looks up an object member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}
	i, ok := v.obj.index[key]
	if !ok {
		return Value{}, false
	}
	return v.obj.members[i].Value, true
}

// Has reports whether the object has the given key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Keys returns the object keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != ObjectKind {
		return nil
	}
	keys := make([]string, len(v.obj.members))
	for i, m := range v.obj.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the object members in insertion order.
func (v Value) Members() []Member {
	if v.kind != ObjectKind {
		return nil
	}
	members := make([]Member, len(v.obj.members))
	copy(members, v.obj.members)
	return members
}

// Identical reports whether a and b serialize to the same compact JSON text:
// same structure, same values and same object key order.
func Identical(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NullKind:
		return true
	case BoolKind:
		return a.b == b.b
	case NumberKind:
		return a.n == b.n
	case StringKind:
		return a.s == b.s
	case ArrayKind:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Identical(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(a.obj.members) != len(b.obj.members) {
			return false
		}
		for i, m := range a.obj.members {
			o := b.obj.members[i]
			if m.Key != o.Key || !Identical(m.Value, o.Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal reports structural equality, ignoring object key order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case ArrayKind:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(a.obj.members) != len(b.obj.members) {
			return false
		}
		for _, m := range a.obj.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	default:
		return Identical(a, b)
	}
}

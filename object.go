package recwire

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is an insertion-ordered object node. Go maps do not preserve member
// order, and Encode guarantees output keys in schema declaration order, so
// the encoder emits Objects instead of map[string]any. Decode and Validate
// accept both shapes, which lets encoder output round-trip directly.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty object with capacity for n members.
func NewObject(n int) *Object {
	return &Object{
		members: make([]Member, 0, n),
		index:   make(map[string]int, n),
	}
}

// Set appends the member, or replaces its value when the key already exists.
func (o *Object) Set(key string, v any) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Len returns the member count.
func (o *Object) Len() int { return len(o.members) }

// Members returns the members in insertion order. The slice is a copy.
func (o *Object) Members() []Member {
	out := make([]Member, len(o.members))
	copy(out, o.members)
	return out
}

// MarshalJSON renders members in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// objectGet looks a field name up in an object node of either supported
// shape. The second result distinguishes "not an object" from "absent".
func objectGet(node any, key string) (val any, present bool, isObject bool) {
	switch t := node.(type) {
	case map[string]any:
		v, ok := t[key]
		return v, ok, true
	case *Object:
		v, ok := t.Get(key)
		return v, ok, true
	default:
		return nil, false, false
	}
}

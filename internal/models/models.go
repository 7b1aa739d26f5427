package models

import "encoding/json"

// Value is a generic type to represent any parsed JSON value.
// This can be a string, json.Number, boolean, nil, *Object, or Array.
type Value interface{}

// Member is a single key/value pair inside an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object. Unlike a plain map it remembers the
// order in which keys were first inserted, so re-serializing a parsed
// document keeps the source key order.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// Set inserts or overwrites a key. An existing key keeps its original
// position.
func (o *Object) Set(key string, value Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
}

// Get returns the value stored for key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Members returns the key/value pairs in insertion order. The slice is
// shared with the object; callers must not mutate it.
func (o *Object) Members() []Member {
	return o.members
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.members)
}

// Array represents a JSON array.
type Array []Value

// Number is re-exported so callers working with the value model don't
// need to import encoding/json for the literal type.
type Number = json.Number

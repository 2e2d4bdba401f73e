// Package sortjson canonicalizes the key order of JSON documents. It parses
// JSON into an order-preserving value tree, sorts object keys from a
// configurable depth, and renders the result with a stable pretty-printed
// layout. Documents carrying // or /* */ comments can be detected and have
// their comments stripped before parsing.
package sortjson

import "encoding/json"

// Value is any JSON value. It is a closed set: the concrete types are Null,
// Bool, Number, String, Array, and Object.
type Value interface {
	isValue()
}

// Null represents the JSON null literal.
type Null struct{}

// Bool represents a JSON boolean.
type Bool bool

// Number represents a JSON number. The original literal text is kept, so a
// document's "1e3" or "1200.50" survives a parse/format round trip verbatim.
type Number json.Number

// String represents a JSON string.
type String string

// Array represents a JSON array.
type Array []Value

// Member is a single key/value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object as an ordered list of members. Unlike a
// map it preserves the document's key order, which is what the sorter
// rearranges and the formatter emits.
type Object []Member

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// Get returns the value stored under key and whether the key is present.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Len returns the number of members.
func (o Object) Len() int {
	return len(o)
}

// Keys returns the object's keys in member order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

package collector

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Payload is the envelope's data field for endpoints that answer with either
// a single object (exact lookups such as tx_hash) or a list.
type Payload[T any] struct {
	One  *T
	Many []T
}

// One wraps a bare object.
func One[T any](v T) Payload[T] { return Payload[T]{One: &v} }

// Many wraps a list. A nil list is treated as an empty one.
func Many[T any](v []T) Payload[T] {
	if v == nil {
		v = []T{}
	}
	return Payload[T]{Many: v}
}

// UnmarshalJSON only checks the shape: array or not.
func (p *Payload[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*p = Payload[T]{}
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	if b[0] == '[' {
		var many []T
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*p = Many(many)
		return nil
	}
	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	p.One = &one
	return nil
}

// Empty reports whether the payload carries nothing.
func (p Payload[T]) Empty() bool {
	return p.One == nil && len(p.Many) == 0
}

// Normalize always returns a non-nil slice: lists pass through unchanged, a
// bare object becomes a one-element slice, an absent payload an empty one.
func Normalize[T any](p Payload[T]) []T {
	if p.Many != nil {
		return p.Many
	}
	if p.One != nil {
		return []T{*p.One}
	}
	return []T{}
}

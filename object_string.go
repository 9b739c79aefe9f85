// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// NewStringIn allocates a copy of s as a String block in h. Strings are
// plain UTF-8 bytes, not zero-terminated.
func NewStringIn(h *Heap, s string) (Value, error) {
	b, err := h.AllocBlockWith([]byte(s), TypeString)
	if err != nil {
		return Value{}, err
	}
	return NewValue(h, objectVal(b.Offset())), nil
}

// NewString is NewStringIn against the current heap.
func NewString(s string) (Value, error) { return NewStringIn(heapOrCurrent(nil), s) }

// AsString returns v's bytes decoded as a Go string. v must be a String (or
// Symbol, which shares the same payload layout).
func (v Value) AsString() string {
	if k := v.Kind(); k != KindString && k != KindSymbol {
		panic(&ErrWrongType{Want: KindString, Got: k})
	}
	return string(v.data.Bytes())
}

// IsString reports whether v is a String.
func (v Value) IsString() bool { return v.Kind() == KindString }

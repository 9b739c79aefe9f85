// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// NewArrayIn allocates a fixed-size Array of count Vals, all initialized to
// null, in h.
func NewArrayIn(h *Heap, count uint32) (Value, error) {
	b, err := h.AllocBlock(count*4, TypeArray)
	if err != nil {
		return Value{}, err
	}
	return NewValue(h, objectVal(b.Offset())), nil
}

// NewArray is NewArrayIn against the current heap.
func NewArray(count uint32) (Value, error) { return NewArrayIn(heapOrCurrent(nil), count) }

// IsArray reports whether v is an Array.
func (v Value) IsArray() bool { return v.Kind() == KindArray }

func (v Value) requireKind(k Kind) {
	if got := v.Kind(); got != k {
		panic(&ErrWrongType{Want: k, Got: got})
	}
}

// Len returns an Array's element count (its fixed capacity).
func (v Value) Len() uint32 {
	v.requireKind(KindArray)
	return v.data.NumVals()
}

// At returns the element at index i of an Array, as a Val.
func (v Value) At(i uint32) Val {
	v.requireKind(KindArray)
	return v.data.ValAt(i)
}

// SetAt stores x at index i of an Array.
func (v Value) SetAt(i uint32, x Val) {
	v.requireKind(KindArray)
	v.data.SetValAt(i, x)
}

// AtValue is At, resolved to a Value against v's heap.
func (v Value) AtValue(i uint32) Value { return NewValue(v.heap, v.At(i)) }

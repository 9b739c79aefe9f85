// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// A Vector is a resizable, Array-like container. Its payload is capacity+1
// Vals: slot 0 holds the current count, slots 1..capacity hold elements.
// Appending writes to slot count+1 and increments the count; a Vector is
// full once count == capacity, and must be Grow'n to accept more.
func vectorCapacity(data Slice) uint32 {
	n := data.NumVals()
	if n == 0 {
		return 0
	}
	return n - 1
}

// NewVectorIn allocates an empty Vector with room for capacity elements.
func NewVectorIn(h *Heap, capacity uint32) (Value, error) {
	b, err := h.AllocBlock((capacity+1)*4, TypeVector)
	if err != nil {
		return Value{}, err
	}
	b.Data().SetValAt(0, Int(0))
	return NewValue(h, objectVal(b.Offset())), nil
}

// NewVector is NewVectorIn against the current heap.
func NewVector(capacity uint32) (Value, error) { return NewVectorIn(heapOrCurrent(nil), capacity) }

// IsVector reports whether v is a Vector.
func (v Value) IsVector() bool { return v.Kind() == KindVector }

// VecLen returns a Vector's current element count.
func (v Value) VecLen() uint32 {
	v.requireKind(KindVector)
	return uint32(v.data.ValAt(0).AsInt())
}

// VecCap returns a Vector's element capacity.
func (v Value) VecCap() uint32 {
	v.requireKind(KindVector)
	return vectorCapacity(v.data)
}

// VecFull reports whether a Vector's count equals its capacity.
func (v Value) VecFull() bool { return v.VecLen() == v.VecCap() }

// VecAt returns the element at index i (0-based) of a Vector.
func (v Value) VecAt(i uint32) Val {
	v.requireKind(KindVector)
	return v.data.ValAt(i + 1)
}

// VecSetAt stores x at index i (0-based) of a Vector; i must be < VecLen.
func (v Value) VecSetAt(i uint32, x Val) {
	v.requireKind(KindVector)
	v.data.SetValAt(i+1, x)
}

// Append adds x as the Vector's new last element. It fails with ErrFull if
// the Vector has no spare capacity; the caller should Grow and retry.
func (v Value) Append(x Val) error {
	v.requireKind(KindVector)
	n := v.VecLen()
	if n == v.VecCap() {
		return &ErrFull{Src: "Vector.Append"}
	}
	v.data.SetValAt(n+1, x)
	v.data.SetValAt(0, Int(int32(n+1)))
	return nil
}

func growVector(h *Heap, v Value, newCapacity uint32) (Value, error) {
	oldCap := v.VecCap()
	if newCapacity < oldCap {
		return Value{}, &ErrINVAL{Src: "Grow: new Vector capacity smaller than old", Arg: newCapacity}
	}
	n, err := NewVectorIn(h, newCapacity)
	if err != nil {
		return Value{}, err
	}
	count := v.VecLen()
	n.data.SetValAt(0, Int(int32(count)))
	for i := uint32(0); i < count; i++ {
		n.data.SetValAt(i+1, v.data.ValAt(i+1))
	}
	return n, nil
}

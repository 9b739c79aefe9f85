// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// GrowIn reallocates a Vector, Dict, or Array to a larger capacity,
// preserving its existing contents, and returns the new Value. The old
// block is left behind as garbage; callers are responsible for overwriting
// every reference they hold to the old Value (a root, a handle, a
// container slot) with the returned one.
func GrowIn(h *Heap, v Value, newCapacity uint32) (Value, error) {
	switch v.Kind() {
	case KindVector:
		return growVector(h, v, newCapacity)
	case KindDict:
		return growDict(h, v, newCapacity)
	case KindArray:
		return growArray(h, v, newCapacity)
	default:
		return Value{}, &ErrWrongType{Want: KindArray, Got: v.Kind()}
	}
}

// Grow is GrowIn against the current heap.
func Grow(v Value, newCapacity uint32) (Value, error) {
	return GrowIn(heapOrCurrent(nil), v, newCapacity)
}

func growArray(h *Heap, v Value, newCapacity uint32) (Value, error) {
	oldLen := v.Len()
	if newCapacity < oldLen {
		return Value{}, &ErrINVAL{Src: "Grow: new Array capacity smaller than old", Arg: newCapacity}
	}
	n, err := NewArrayIn(h, newCapacity)
	if err != nil {
		return Value{}, err
	}
	for i := uint32(0); i < oldLen; i++ {
		n.SetAt(i, v.At(i))
	}
	return n, nil
}

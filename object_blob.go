// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// NewBlobIn allocates a copy of data as an opaque Blob block in h.
func NewBlobIn(h *Heap, data []byte) (Value, error) {
	b, err := h.AllocBlockWith(data, TypeBlob)
	if err != nil {
		return Value{}, err
	}
	return NewValue(h, objectVal(b.Offset())), nil
}

// NewBlob is NewBlobIn against the current heap.
func NewBlob(data []byte) (Value, error) { return NewBlobIn(heapOrCurrent(nil), data) }

// AsBlob returns v's raw bytes. v must be a Blob.
func (v Value) AsBlob() []byte {
	if k := v.Kind(); k != KindBlob {
		panic(&ErrWrongType{Want: KindBlob, Got: k})
	}
	return v.data.Bytes()
}

// IsBlob reports whether v is a Blob.
func (v Value) IsBlob() bool { return v.Kind() == KindBlob }

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import (
	"encoding/binary"
	"math"
)

// NewBigIntIn boxes n as an 8-byte two's-complement BigInt block in h. Use
// this only for values outside [MinInt, MaxInt]; TryInt / Int handle the
// common case as a plain immediate. NewNumberIn chooses automatically.
func NewBigIntIn(h *Heap, n int64) (Value, error) {
	b, err := h.AllocBlock(8, TypeBigInt)
	if err != nil {
		return Value{}, err
	}
	binary.LittleEndian.PutUint64(b.Data().Bytes(), uint64(n))
	return NewValue(h, objectVal(b.Offset())), nil
}

// NewBigInt is NewBigIntIn against the current heap.
func NewBigInt(n int64) (Value, error) { return NewBigIntIn(heapOrCurrent(nil), n) }

// NewNumberIn returns the Value for n: a small-int immediate if n fits
// [MinInt, MaxInt], otherwise a boxed BigInt block.
func NewNumberIn(h *Heap, n int64) (Value, error) {
	if v, ok := TryInt(n); ok {
		return Value{val: v}, nil
	}
	return NewBigIntIn(h, n)
}

// NewNumber is NewNumberIn against the current heap.
func NewNumber(n int64) (Value, error) { return NewNumberIn(heapOrCurrent(nil), n) }

// AsBigInt returns v's 64-bit integer value. v must be a BigInt.
func (v Value) AsBigInt() int64 {
	if k := v.Kind(); k != KindBigInt {
		panic(&ErrWrongType{Want: KindBigInt, Got: k})
	}
	return int64(binary.LittleEndian.Uint64(v.data.Bytes()))
}

// IsBigInt reports whether v is a BigInt.
func (v Value) IsBigInt() bool { return v.Kind() == KindBigInt }

// NewFloatIn boxes f as a Float block in h: 4 bytes if f round-trips exactly
// through a float32, 8 bytes otherwise.
func NewFloatIn(h *Heap, f float64) (Value, error) {
	f32 := float32(f)
	if float64(f32) == f {
		b, err := h.AllocBlock(4, TypeFloat)
		if err != nil {
			return Value{}, err
		}
		binary.LittleEndian.PutUint32(b.Data().Bytes(), math.Float32bits(f32))
		return NewValue(h, objectVal(b.Offset())), nil
	}
	b, err := h.AllocBlock(8, TypeFloat)
	if err != nil {
		return Value{}, err
	}
	binary.LittleEndian.PutUint64(b.Data().Bytes(), math.Float64bits(f))
	return NewValue(h, objectVal(b.Offset())), nil
}

// NewFloat is NewFloatIn against the current heap.
func NewFloat(f float64) (Value, error) { return NewFloatIn(heapOrCurrent(nil), f) }

// AsFloat returns v's value as a float64, widening from the 4-byte form if
// that's how it was stored. v must be a Float.
func (v Value) AsFloat() float64 {
	if k := v.Kind(); k != KindFloat {
		panic(&ErrWrongType{Want: KindFloat, Got: k})
	}
	switch v.data.Len() {
	case 4:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(v.data.Bytes())))
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(v.data.Bytes()))
	}
}

// IsFloat reports whether v is a Float.
func (v Value) IsFloat() bool { return v.Kind() == KindFloat }

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// A Value is a fat reference: a Val plus, when that Val names an object, a
// resolved payload Slice cached at construction time. Value is meant for
// mutator-local storage — a Go local variable, a stack slot, a Handle — and
// is never itself embedded in a heap block; only a bare Val is.
//
// A Value's cached Slice is invalidated by any GC that runs after it was
// made. Code that needs a Value to survive a GC must register it with a
// Handle (see handle.go); an unregistered Value read after an allocation
// that may have triggered GC is undefined.
type Value struct {
	val  Val
	heap *Heap
	data Slice // zero value if val is not an object reference
}

// NewValue wraps v, resolving its payload slice against h if v is an object
// reference.
func NewValue(h *Heap, v Val) Value {
	val := Value{val: v, heap: h}
	if off, ok := v.Offset(); ok {
		val.data = blockAt(h, off).Data()
	}
	return val
}

// Null, Nullish, True and False are the immediate Values, independent of any
// particular heap.
func Null() Value          { return Value{val: ValNull} }
func Nullish() Value       { return Value{val: ValNullish} }
func True() Value          { return Value{val: valTrueBit} }
func False() Value         { return Value{val: valFalseBit} }
func BoolValue(b bool) Value { return Value{val: Bool(b)} }

// IntValue returns the Value for a small integer; n must fit MinInt..MaxInt.
func IntValue(n int32) Value { return Value{val: Int(n)} }

// Val returns the bare 32-bit word this Value wraps.
func (v Value) Val() Val { return v.val }

// Heap returns the heap this Value was resolved against, or nil for a
// heap-independent immediate.
func (v Value) Heap() *Heap { return v.heap }

func (v Value) block() Block {
	off, _ := v.val.Offset()
	return blockAt(v.heap, off)
}

// Kind reports v's full dynamic type.
func (v Value) Kind() Kind {
	switch {
	case v.val.IsNull():
		return KindNull
	case v.val.IsNullish():
		return KindNullish
	case v.val.IsBool():
		return KindBool
	case v.val.IsInt():
		return KindInt
	default:
		return typeKind(v.block().Type())
	}
}

// IsNull, IsNullish, IsBool, IsInt and IsObject mirror the corresponding Val
// predicates.
func (v Value) IsNull() bool    { return v.val.IsNull() }
func (v Value) IsNullish() bool { return v.val.IsNullish() }
func (v Value) IsBool() bool    { return v.val.IsBool() }
func (v Value) IsInt() bool     { return v.val.IsInt() }
func (v Value) IsObject() bool  { return v.val.IsObject() }

// AsBool and AsInt return v's immediate payload. Calling them on a Value of
// the wrong Kind panics via a debug assertion, per §7's "container type
// mismatch" contract — callers should check Kind or the Is predicates first.
func (v Value) AsBool() bool {
	if !v.val.IsBool() {
		panic(&ErrWrongType{Want: KindBool, Got: v.Kind()})
	}
	return v.val.AsBool()
}

func (v Value) AsInt() int32 {
	if !v.val.IsInt() {
		panic(&ErrWrongType{Want: KindInt, Got: v.Kind()})
	}
	return v.val.AsInt()
}

// Offset returns the block offset v refers to, if v IsObject.
func (v Value) Offset() (uint32, bool) { return v.val.Offset() }

// byteSize returns the cached payload size for an object Value, 0 otherwise.
func (v Value) byteSize() uint32 { return v.data.Len() }

// relocate rewrites v in place to point at the block's new (post-GC)
// location. It is only ever called by the garbage collector, on Values held
// through registered Handles.
func (v *Value) relocate(newHeap *Heap, newVal Val) {
	v.heap = newHeap
	v.val = newVal
	if off, ok := newVal.Offset(); ok {
		v.data = blockAt(newHeap, off).Data()
	} else {
		v.data = Slice{}
	}
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// A Handle is a registered external root holding a Value: a stable storage
// location outside the heap whose referent the garbage collector keeps
// pointed at the right block across a heap move. Acquire one with NewHandle
// and call Release on every exit path — typically via defer — once it is no
// longer needed; an unreleased Handle keeps its Value's block alive forever.
//
// Registration order is irrelevant, and handles may be released in any
// order: the registry is an unordered slice searched by identity, not a
// ring or list.
type Handle struct {
	v *Value
}

// NewHandle registers v as an external root of its heap.
func NewHandle(v *Value) *Handle {
	v.heap.valHandles = append(v.heap.valHandles, v)
	return &Handle{v: v}
}

// Release unregisters the handle. Releasing an unknown or already-released
// Handle is a caller bug — the "handle misuse" fatal case of spec.md §7 — so
// this panics rather than silently doing nothing.
func (h *Handle) Release() {
	hs := h.v.heap.valHandles
	for i, p := range hs {
		if p == h.v {
			h.v.heap.valHandles = append(hs[:i], hs[i+1:]...)
			return
		}
	}
	panic(&ErrINVAL{Src: "Handle.Release: unknown or already-released handle"})
}

// An ObjectHandle is a Handle specialized for an Object, registered in the
// heap's separate object-root collection (see spec.md §4.1's root set).
type ObjectHandle struct {
	o *Object
}

// NewObjectHandle registers o as an external root of its heap.
func NewObjectHandle(o *Object) *ObjectHandle {
	o.heap.objHandles = append(o.heap.objHandles, o)
	return &ObjectHandle{o: o}
}

// Release unregisters the handle.
func (h *ObjectHandle) Release() {
	hs := h.o.heap.objHandles
	for i, p := range hs {
		if p == h.o {
			h.o.heap.objHandles = append(hs[:i], hs[i+1:]...)
			return
		}
	}
	panic(&ErrINVAL{Src: "ObjectHandle.Release: unknown or already-released handle"})
}

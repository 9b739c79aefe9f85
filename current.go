// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// The core is single-threaded cooperative (spec.md §5): there is one
// "current heap" slot, pushed and popped by a scoped guard, that factory
// functions consult when not given a heap explicitly. Nothing here is
// goroutine-local — sharing a Heap, or this stack, across goroutines is
// undefined, exactly as sharing it across threads would be in the original.
var currentStack []*Heap

// Current returns the innermost heap pushed by Use, or nil if none.
func Current() *Heap {
	if len(currentStack) == 0 {
		return nil
	}
	return currentStack[len(currentStack)-1]
}

// Use pushes h as the current heap and returns a function that pops it. The
// idiom is:
//
//	defer arenaheap.Use(h)()
//
// which guarantees restoration on every exit path, normal or panicking,
// matching the "using heap" scoped-resource semantics of spec.md §5.
func Use(h *Heap) func() {
	currentStack = append(currentStack, h)
	n := len(currentStack)
	return func() {
		if len(currentStack) != n {
			panic(&ErrINVAL{Src: "Use: unbalanced pop"})
		}
		currentStack = currentStack[:n-1]
	}
}

// heapOrCurrent returns h if non-nil, else the current heap; it panics if
// both are nil, since every factory function needs a heap to allocate into.
func heapOrCurrent(h *Heap) *Heap {
	if h != nil {
		return h
	}
	if c := Current(); c != nil {
		return c
	}
	panic(&ErrINVAL{Src: "no current heap: call Use or pass a Heap explicitly"})
}

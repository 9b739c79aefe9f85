// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "fmt"

// A FatalError reports a condition the garbage collector cannot recover
// from — per spec.md §7, to-heap allocation failure during GC is fatal,
// since GC never needs more space than was already in use in the from-heap.
// RunGC panics with a *FatalError rather than returning one; there is no
// sane way for a caller to continue after a GC that couldn't complete.
type FatalError struct {
	Src string
	Err error
}

func (e *FatalError) Error() string { return fmt.Sprintf("arenaheap: fatal: %s: %v", e.Src, e.Err) }
func (e *FatalError) Unwrap() error { return e.Err }

/*

RunGC performs a single Cheney-style copying collection of h in place.

It allocates a fresh to-heap of h's capacity, scans h's root set (the root
block, the symbol-table array, and every registered Value/Object handle),
moves each reachable block into the to-heap, breadth-first drains the
resulting work queue of moved containers (rewriting their Val slots to point
at the to-heap as each referent is itself moved), re-sorts every Dict it
touched (relocation changes every key's Val and hence its sort position),
and finally swaps h's backing storage for the compacted copy. h's identity
— the *Heap value callers hold — is unchanged; only its contents move.

The delicate part is the one spec.md §9 calls out explicitly: while a moved
container block sits in the to-heap mid-drain, its Val slots still encode
from-heap offsets, not to-heap ones. This is what lets the drain step look
the original block back up without assuming the two heaps' addresses are
anywhere near each other; the final, to-heap-relative value is only written
once that referent has itself been moved.

*/
func (h *Heap) RunGC() {
	from := &Heap{bytes: h.bytes, capacity: h.capacity, cursor: h.cursor}

	toBytes := make([]byte, h.capacity)
	putU32(toBytes[magicOff:], Magic)
	to := &Heap{bytes: toBytes, capacity: h.capacity, cursor: HeaderSize, owned: true}

	var containerQueue, dictQueue []uint32

	move := func(off uint32) uint32 {
		b := blockAt(from, off)
		if b.IsForwarded() {
			return b.ForwardingAddress()
		}
		typ := b.Type()
		src := b.Data().Bytes()
		nb, err := to.AllocBlock(uint32(len(src)), typ)
		if err != nil {
			panic(&FatalError{Src: "RunGC: to-heap allocation failed", Err: err})
		}
		copy(nb.Data().Bytes(), src)
		newOff := nb.Offset()
		b.SetForwardingAddress(newOff)

		switch typ {
		case TypeArray, TypeVector, TypeDict:
			containerQueue = append(containerQueue, newOff)
			if typ == TypeDict {
				dictQueue = append(dictQueue, newOff)
			}
		}
		return newOff
	}

	relocateSlot := func(data Slice, i uint32) {
		v := data.ValAt(i)
		if off, ok := v.Offset(); ok {
			data.SetValAt(i, objectVal(move(off)))
		}
	}

	var newRootOff uint32
	if rootOff := from.rawRootOffset(); rootOff != 0 {
		newRootOff = move(rootOff)
	}

	var newSymtabOff uint32
	if stOff := from.rawSymtabOffset(); stOff != 0 {
		newSymtabOff = move(stOff)
	}

	for _, vp := range h.valHandles {
		if off, ok := vp.val.Offset(); ok {
			newOff := move(off)
			vp.relocate(to, objectVal(newOff))
		}
	}
	for _, op := range h.objHandles {
		if off, ok := op.val.Offset(); ok {
			newOff := move(off)
			op.relocate(to, objectVal(newOff))
		}
	}

	for i := 0; i < len(containerQueue); i++ {
		b := blockAt(to, containerQueue[i])
		data := b.Data()
		switch b.Type() {
		case TypeArray:
			for j := uint32(0); j < data.NumVals(); j++ {
				relocateSlot(data, j)
			}
		case TypeVector:
			n := data.NumVals()
			if n == 0 {
				continue
			}
			count := uint32(data.ValAt(0).AsInt())
			for j := uint32(1); j <= count && j < n; j++ {
				relocateSlot(data, j)
			}
		case TypeDict:
			for j := uint32(0); j+1 < data.NumVals(); j += 2 {
				if data.ValAt(j).IsNull() {
					continue
				}
				relocateSlot(data, j)
				relocateSlot(data, j+1)
			}
		}
	}

	for _, doff := range dictQueue {
		NewValue(to, objectVal(doff)).Sort()
	}

	putU32(to.bytes[rootOff:], newRootOff)
	putU32(to.bytes[symtabOff:], newSymtabOff)

	h.bytes = to.bytes
	h.cursor = to.cursor

	if newSymtabOff != 0 {
		st, err := reopenSymbolTable(h, newSymtabOff)
		if err != nil {
			panic(&FatalError{Src: "RunGC: symbol table corrupt after move", Err: err})
		}
		h.symtab = st
	} else {
		h.symtab = nil
	}

	for _, vp := range h.valHandles {
		vp.heap = h
	}
	for _, op := range h.objHandles {
		op.heap = h
	}
}

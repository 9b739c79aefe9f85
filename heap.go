// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import (
	"encoding/binary"
)

// Magic is the fixed 32-bit word every valid heap image begins with.
const Magic uint32 = 0xA189933A

const (
	magicOff   = 0
	rootOff    = 4
	symtabOff  = 8
	HeaderSize = 12
)

// A FailureHandler is invoked by AllocBlock when the heap has no room left
// for a requested allocation. It may run the garbage collector, extend the
// heap's end pointer (only ever valid up to the heap's original capacity),
// or both. Returning true asks AllocBlock to retry; false, or true without
// the heap's free space having grown, makes the allocation fail with
// ErrNoSpace.
//
// A FailureHandler must not re-enter its Heap except through Heap.RunGC or
// Heap.growTo; anything else is undefined.
type FailureHandler func(h *Heap, requested uint32) bool

// A Heap owns a contiguous byte region holding a serializable header, a
// bump-allocated sequence of blocks, and the registries (handles, symbol
// table) that let a garbage collector find every live reference.
//
// A Heap is not safe for concurrent use; see spec.md §5. All factory
// functions (NewString, NewArray, ...) look up the "current" heap — see
// Use — when not given one explicitly.
type Heap struct {
	bytes    []byte
	capacity uint32
	cursor   uint32
	owned    bool // true if this Heap allocated its own backing array (New and Existing both do)

	onFailure FailureHandler

	valHandles []*Value
	objHandles []*Object

	symtab *symbolTable
}

// New creates a Heap owning a freshly allocated capacity-byte backing array.
func New(capacity uint32) *Heap {
	h := &Heap{
		bytes:    make([]byte, capacity),
		capacity: capacity,
		cursor:   HeaderSize,
		owned:    true,
	}
	binary.LittleEndian.PutUint32(h.bytes[magicOff:], Magic)
	return h
}

// Existing reconstructs a Heap from a previously saved byte image. contents
// must be exactly the bytes written by SaveFile (i.e. a Heap's Bytes());
// capacity may be larger than len(contents) to leave room for further
// growth. contents is copied into a fresh capacity-byte backing array, so
// later allocation in the returned Heap never writes to contents.
//
// Existing validates the magic word and the root offset; on any structural
// problem it returns a Heap for which Valid reports false along with a
// non-nil error describing the first problem found. No content-level
// validation (e.g. of individual blocks) is performed.
func Existing(contents []byte, capacity uint32) (*Heap, error) {
	if uint32(len(contents)) > capacity {
		return &Heap{}, &ErrCorrupt{Src: "Existing: contents longer than capacity", Arg: len(contents)}
	}
	if len(contents) < HeaderSize {
		return &Heap{}, &ErrCorrupt{Src: "Existing: contents shorter than header", Arg: len(contents)}
	}

	bytes := make([]byte, capacity)
	copy(bytes, contents)

	h := &Heap{
		bytes:    bytes,
		capacity: capacity,
		cursor:   uint32(len(contents)),
		owned:    true,
	}

	if magic := binary.LittleEndian.Uint32(h.bytes[magicOff:]); magic != Magic {
		return &Heap{}, &ErrCorrupt{Src: "Existing: bad magic", Arg: magic}
	}

	root := h.rawRootOffset()
	if root != 0 && (root < HeaderSize || root >= h.cursor) {
		return &Heap{}, &ErrCorrupt{Src: "Existing: root offset out of range", Arg: root}
	}

	symtabArr := h.rawSymtabOffset()
	if symtabArr != 0 && (symtabArr < HeaderSize || symtabArr >= h.cursor) {
		return &Heap{}, &ErrCorrupt{Src: "Existing: symbol-table offset out of range", Arg: symtabArr}
	}

	if symtabArr != 0 {
		st, err := reopenSymbolTable(h, symtabArr)
		if err != nil {
			return &Heap{}, err
		}
		h.symtab = st
	}

	return h, nil
}

// Valid reports whether h was successfully constructed (via New or a
// successful Existing) and has not been invalidated.
func (h *Heap) Valid() bool { return h.bytes != nil }

// Capacity is the heap's total byte budget.
func (h *Heap) Capacity() uint32 { return h.capacity }

// Used is the number of bytes currently occupied by the header and all
// blocks (live or garbage), i.e. the bump cursor.
func (h *Heap) Used() uint32 { return h.cursor }

func (h *Heap) rawRootOffset() uint32 { return binary.LittleEndian.Uint32(h.bytes[rootOff:]) }
func (h *Heap) rawSymtabOffset() uint32 {
	return binary.LittleEndian.Uint32(h.bytes[symtabOff:])
}

// Root returns the heap's root Value, or the null Value if none has been
// set.
func (h *Heap) Root() Value {
	off := h.rawRootOffset()
	if off == 0 {
		return Null()
	}
	return NewValue(h, objectVal(off))
}

// SetRoot installs v as the heap's root, persisted in the header. v must be
// either an object Value belonging to h, or an immediate. The header holds
// only a block offset, so an immediate v clears the root and Root then
// returns null.
func (h *Heap) SetRoot(v Value) {
	var off uint32
	if o, ok := v.Offset(); ok {
		off = o
	}
	binary.LittleEndian.PutUint32(h.bytes[rootOff:], off)
}

// SetFailureHandler installs f as the allocation-failure handler, replacing
// any previous one. Pass nil to remove it (allocation then fails outright
// whenever the heap is full).
func (h *Heap) SetFailureHandler(f FailureHandler) { h.onFailure = f }

// Bytes returns the heap's backing storage truncated to the bytes actually
// in use (header through cursor) — exactly what SaveFile writes.
func (h *Heap) Bytes() []byte { return h.bytes[:h.cursor] }

// growTo advances the cursor's notion of "capacity" is fixed; growTo instead
// extends usable space by raising h.capacity up to the length of the
// originally allocated backing array. It is the only sanctioned way a
// failure handler may "extend the heap's end pointer" per §4.1.
func (h *Heap) growTo(newCapacity uint32) bool {
	if !h.owned || newCapacity > uint32(len(h.bytes)) || newCapacity <= h.capacity {
		return false
	}
	h.capacity = newCapacity
	return true
}

// AllocBlock reserves dataSize bytes of payload for a new block of type typ,
// returning the uninitialized block. On out-of-space it invokes the
// allocation-failure handler (if any) and retries for as long as the
// handler returns true and leaves more free space than before the call;
// otherwise AllocBlock returns ErrNoSpace.
func (h *Heap) AllocBlock(dataSize uint32, typ Type) (Block, error) {
	if dataSize >= MaxLargeDataSize {
		return Block{}, &ErrINVAL{Src: "AllocBlock: payload too large", Arg: dataSize}
	}
	total := blockByteSize(dataSize)
	for {
		if h.cursor+total <= h.capacity {
			off := h.cursor
			h.cursor += total
			b := blockAt(h, off)
			b.writeHeader(typ, dataSize)
			return b, nil
		}
		avail := h.capacity - h.cursor
		if h.onFailure == nil || !h.onFailure(h, total) || h.capacity-h.cursor <= avail {
			return Block{}, &ErrNoSpace{Requested: total, Capacity: h.capacity}
		}
	}
}

// AllocBlockWith is the AllocBlock + copy-in convenience used by the String,
// Symbol and Blob constructors.
func (h *Heap) AllocBlockWith(data []byte, typ Type) (Block, error) {
	b, err := h.AllocBlock(uint32(len(data)), typ)
	if err != nil {
		return Block{}, err
	}
	copy(b.Data().Bytes(), data)
	return b, nil
}

// VisitAll walks every block from the header to the cursor, in allocation
// order, calling f on each — live or garbage, forwarded or not. It ignores
// reachability entirely; use Visit for a reachability-only walk.
func (h *Heap) VisitAll(f func(Block)) {
	off := uint32(HeaderSize)
	for off < h.cursor {
		b := blockAt(h, off)
		f(b)
		off = b.NextBlock()
	}
}

// roots yields the heap's root set per §4.1: the root block, the symbol
// table's backing array, every registered external Value handle, and every
// registered external Object handle.
func (h *Heap) roots(f func(off uint32)) {
	if off := h.rawRootOffset(); off != 0 {
		f(off)
	}
	if off := h.rawSymtabOffset(); off != 0 {
		f(off)
	}
	for _, vp := range h.valHandles {
		if off, ok := vp.Offset(); ok {
			f(off)
		}
	}
	for _, hp := range h.objHandles {
		if off, ok := hp.Offset(); ok {
			f(off)
		}
	}
}

// Visit performs a reachability traversal from every root and calls f on
// each distinct reachable block exactly once. It clears every block's
// visited bit both before starting and before returning, so nested or
// repeated calls never see stale marks.
func (h *Heap) Visit(f func(Block)) {
	h.VisitAll(func(b Block) { b.ClearVisited() })

	var queue []uint32
	seen := func(off uint32) bool {
		b := blockAt(h, off)
		if b.IsVisited() {
			return true
		}
		b.SetVisited()
		queue = append(queue, off)
		return false
	}

	h.roots(func(off uint32) {
		if !seen(off) {
			f(blockAt(h, off))
		}
	})

	for i := 0; i < len(queue); i++ {
		b := blockAt(h, queue[i])
		walkContainerVals(b, func(v Val) {
			if off, ok := v.Offset(); ok {
				if !blockAt(h, off).IsVisited() {
					if !seen(off) {
						f(blockAt(h, off))
					}
				}
			}
		})
	}

	h.VisitAll(func(b Block) { b.ClearVisited() })
}

// walkContainerVals calls f for every Val slot held directly by a container
// block (Array, Vector, Dict); it is a no-op for scalar block types.
func walkContainerVals(b Block, f func(Val)) {
	switch b.Type() {
	case TypeArray:
		data := b.Data()
		for i := uint32(0); i < data.NumVals(); i++ {
			f(data.ValAt(i))
		}
	case TypeVector:
		data := b.Data()
		n := data.NumVals()
		if n == 0 {
			return
		}
		count := data.ValAt(0).AsInt()
		for i := uint32(1); i <= uint32(count) && i < n; i++ {
			f(data.ValAt(i))
		}
	case TypeDict:
		data := b.Data()
		for i := uint32(0); i+1 < data.NumVals(); i += 2 {
			k, v := data.ValAt(i), data.ValAt(i+1)
			if k.IsNull() {
				continue
			}
			f(k)
			f(v)
		}
	}
}

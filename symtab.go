// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "github.com/cespare/xxhash/v2"

// The symbol table is an open-addressed, linear-probed hash table whose
// backing storage is itself an Array living inside the same heap, pointed
// to by the header's symbol-table field. Each logical slot occupies two
// adjacent Vals: a hash Val (a small-int carrying a 31-bit hash code, or
// null if the slot is empty) and a symbol Val (a reference to the unique
// Symbol block, or null).
//
// Because the backing store rides inside the heap it needs, it is saved and
// reopened along with everything else; reopenSymbolTable recomputes the
// live count by a single scan, since the count itself is not persisted.
const (
	initialSymtabSlots = 128
	symtabLoadFactor   = 0.9
)

type symbolTable struct {
	arrOff uint32
	slots  uint32 // always a power of two
	count  uint32
}

// stringHash is the stable 32-bit hash required by spec.md §4.6, narrowed by
// one arithmetic bit so it always fits a small-int Val (MinInt..MaxInt is
// one bit short of the full int32 range). xxhash is not what lldb itself
// reaches for — it has no string interning of its own — but it's the hash
// family the rest of the retrieved pack uses for exactly this kind of
// fast, non-cryptographic keyed lookup (see arena-cache's shard index).
func stringHash(s string) int32 {
	h32 := uint32(xxhash.Sum64String(s))
	return int32(h32) >> 1
}

func symtabSlotHash(data Slice, i uint32) Val { return data.ValAt(i * 2) }
func symtabSlotSym(data Slice, i uint32) Val  { return data.ValAt(i*2 + 1) }

// reopenSymbolTable reconstructs a symbolTable's in-memory bookkeeping
// (slot count, live entry count) from a backing Array already present at
// arrOff in h — the situation after Existing() finds a nonzero
// symbol-table header field.
func reopenSymbolTable(h *Heap, arrOff uint32) (*symbolTable, error) {
	b := blockAt(h, arrOff)
	if b.Type() != TypeArray {
		return nil, &ErrCorrupt{Src: "reopenSymbolTable: backing block is not an Array", Arg: b.Type()}
	}
	data := b.Data()
	slots := data.NumVals() / 2
	st := &symbolTable{arrOff: arrOff, slots: slots}
	for i := uint32(0); i < slots; i++ {
		if !symtabSlotHash(data, i).IsNull() {
			st.count++
		}
	}
	return st, nil
}

func (h *Heap) ensureSymbolTable() (*symbolTable, error) {
	if h.symtab != nil {
		return h.symtab, nil
	}
	arr, err := NewArrayIn(h, initialSymtabSlots*2)
	if err != nil {
		return nil, err
	}
	off, _ := arr.Offset()
	h.symtab = &symbolTable{arrOff: off, slots: initialSymtabSlots}
	h.setSymtabOffset(off)
	return h.symtab, nil
}

func (h *Heap) setSymtabOffset(off uint32) {
	putU32(h.bytes[symtabOff:], off)
}

// FindSymbolIn looks up s in h's symbol table without creating it. It
// reports (Value{}, false) if h has no symbol table yet or s was never
// interned.
func FindSymbolIn(h *Heap, s string) (Value, bool) {
	if h.symtab == nil {
		return Value{}, false
	}
	return h.symtab.find(h, s)
}

// FindSymbol is FindSymbolIn against the current heap.
func FindSymbol(s string) (Value, bool) { return FindSymbolIn(heapOrCurrent(nil), s) }

func (st *symbolTable) find(h *Heap, s string) (Value, bool) {
	data := blockAt(h, st.arrOff).Data()
	mask := st.slots - 1
	hv := Int(stringHash(s))
	idx := uint32(stringHash(s)) & mask
	for {
		slotHash := symtabSlotHash(data, idx)
		if slotHash.IsNull() {
			return Value{}, false
		}
		if slotHash == hv {
			sym := NewValue(h, symtabSlotSym(data, idx))
			if sym.AsString() == s {
				return sym, true
			}
		}
		idx = (idx + 1) & mask
	}
}

// InternIn interns s: returns the existing Symbol if s was interned before,
// otherwise allocates a new unique Symbol block and registers it. Calling
// InternIn any number of times with the same string returns Symbols that
// are pairwise equal by Val identity.
func InternIn(h *Heap, s string) (Value, error) {
	st, err := h.ensureSymbolTable()
	if err != nil {
		return Value{}, err
	}
	if sym, ok := st.find(h, s); ok {
		return sym, nil
	}
	if float64(st.count+1) > symtabLoadFactor*float64(st.slots) {
		if err := st.grow(h); err != nil {
			return Value{}, err
		}
	}

	b, err := h.AllocBlockWith([]byte(s), TypeSymbol)
	if err != nil {
		return Value{}, err
	}
	symVal := objectVal(b.Offset())
	hv := Int(stringHash(s))

	data := blockAt(h, st.arrOff).Data()
	mask := st.slots - 1
	idx := uint32(stringHash(s)) & mask
	for !symtabSlotHash(data, idx).IsNull() {
		idx = (idx + 1) & mask
	}
	data.SetValAt(idx*2, hv)
	data.SetValAt(idx*2+1, symVal)
	st.count++

	return NewValue(h, symVal), nil
}

// Intern is InternIn against the current heap.
func Intern(s string) (Value, error) { return InternIn(heapOrCurrent(nil), s) }

func (st *symbolTable) grow(h *Heap) error {
	newSlots := st.slots * 2
	newArr, err := NewArrayIn(h, newSlots*2)
	if err != nil {
		return err
	}
	newOff, _ := newArr.Offset()
	newData := blockAt(h, newOff).Data()

	oldData := blockAt(h, st.arrOff).Data()
	mask := newSlots - 1
	for i := uint32(0); i < st.slots; i++ {
		hv := symtabSlotHash(oldData, i)
		if hv.IsNull() {
			continue
		}
		symVal := symtabSlotSym(oldData, i)
		idx := uint32(hv.AsInt()) & mask
		for !symtabSlotHash(newData, idx).IsNull() {
			idx = (idx + 1) & mask
		}
		newData.SetValAt(idx*2, hv)
		newData.SetValAt(idx*2+1, symVal)
	}

	st.arrOff = newOff
	st.slots = newSlots
	h.setSymtabOffset(newOff)
	return nil
}

// SymbolCount returns the number of symbols currently interned in h's symbol
// table (0 if none has been created yet).
func (h *Heap) SymbolCount() uint32 {
	if h.symtab == nil {
		return 0
	}
	return h.symtab.count
}

// IsSymbol reports whether v is a Symbol.
func (v Value) IsSymbol() bool { return v.Kind() == KindSymbol }

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "sort"

// A Dict is a sorted sequence of (key, value) Val pairs, kept in descending
// Val bit-order — treating both words as unsigned 32-bit integers and
// comparing with '>' — so that empty (null, null) slots, which sort lowest,
// always end up at the tail. Keys are compared by identity only: two Dicts
// never treat equal-content strings as the same key unless they are the
// same String block.
func dictCapacity(data Slice) uint32 { return data.NumVals() / 2 }
func dictKeyAt(data Slice, i uint32) Val { return data.ValAt(i * 2) }
func dictValAt(data Slice, i uint32) Val { return data.ValAt(i*2 + 1) }
func dictSetSlot(data Slice, i uint32, k, v Val) {
	data.SetValAt(i*2, k)
	data.SetValAt(i*2+1, v)
}

// NewDictIn allocates an empty Dict with room for capacity entries.
func NewDictIn(h *Heap, capacity uint32) (Value, error) {
	b, err := h.AllocBlock(capacity*8, TypeDict)
	if err != nil {
		return Value{}, err
	}
	return NewValue(h, objectVal(b.Offset())), nil
}

// NewDict is NewDictIn against the current heap.
func NewDict(capacity uint32) (Value, error) { return NewDictIn(heapOrCurrent(nil), capacity) }

// IsDict reports whether v is a Dict.
func (v Value) IsDict() bool { return v.Kind() == KindDict }

// DictCap returns a Dict's slot capacity.
func (v Value) DictCap() uint32 {
	v.requireKind(KindDict)
	return dictCapacity(v.data)
}

// dictSearch returns the index of the first slot whose key is <= the search
// key under descending order — key's insertion point, or its location if
// present. The predicate is monotonic (false*, true*) because entries only
// ever get smaller (toward null) as i grows.
func dictSearch(data Slice, key Val) int {
	n := int(dictCapacity(data))
	return sort.Search(n, func(i int) bool {
		return dictKeyAt(data, uint32(i)) <= key
	})
}

// Find returns the value stored for key, and true, or (0, false) if key is
// not present.
func (v Value) Find(key Val) (Val, bool) {
	v.requireKind(KindDict)
	if key.IsNull() {
		return 0, false
	}
	i := dictSearch(v.data, key)
	cap := dictCapacity(v.data)
	if uint32(i) < cap && dictKeyAt(v.data, uint32(i)) == key {
		return dictValAt(v.data, uint32(i)), true
	}
	return 0, false
}

// Count returns the number of non-empty entries currently in the Dict.
func (v Value) Count() uint32 {
	v.requireKind(KindDict)
	cap := dictCapacity(v.data)
	var n uint32
	for i := uint32(0); i < cap; i++ {
		if !dictKeyAt(v.data, i).IsNull() {
			n++
		} else {
			break
		}
	}
	return n
}

func (v Value) dictInsertAt(i, cap uint32, key, val Val) error {
	if !dictKeyAt(v.data, cap-1).IsNull() {
		return &ErrFull{Src: "Dict"}
	}
	for j := cap - 1; j > i; j-- {
		k, val2 := dictKeyAt(v.data, j-1), dictValAt(v.data, j-1)
		dictSetSlot(v.data, j, k, val2)
	}
	dictSetSlot(v.data, i, key, val)
	return nil
}

// Set stores value for key: overwriting if key is already present,
// otherwise inserting in sorted position. It fails with ErrFull only when
// key is new and the Dict has no empty slot left.
func (v Value) Set(key, val Val) error {
	v.requireKind(KindDict)
	if key.IsNull() {
		return &ErrINVAL{Src: "Dict.Set: null key"}
	}
	cap := dictCapacity(v.data)
	i := uint32(dictSearch(v.data, key))
	if i < cap && dictKeyAt(v.data, i) == key {
		dictSetSlot(v.data, i, key, val)
		return nil
	}
	return v.dictInsertAt(i, cap, key, val)
}

// Insert is Set, but fails (without modifying the Dict) if key is already
// present.
func (v Value) Insert(key, val Val) error {
	v.requireKind(KindDict)
	if _, ok := v.Find(key); ok {
		return &ErrINVAL{Src: "Dict.Insert: key already present"}
	}
	return v.Set(key, val)
}

// Replace overwrites key's value, but fails (without modifying the Dict) if
// key is not present.
func (v Value) Replace(key, val Val) error {
	v.requireKind(KindDict)
	cap := dictCapacity(v.data)
	i := uint32(dictSearch(v.data, key))
	if key.IsNull() || i >= cap || dictKeyAt(v.data, i) != key {
		return &ErrINVAL{Src: "Dict.Replace: key not present"}
	}
	dictSetSlot(v.data, i, key, val)
	return nil
}

// Remove deletes key if present, shifting later entries left and clearing
// the vacated trailing slot to (null, null). It reports whether key was
// present.
func (v Value) Remove(key Val) bool {
	v.requireKind(KindDict)
	cap := dictCapacity(v.data)
	i := uint32(dictSearch(v.data, key))
	if key.IsNull() || i >= cap || dictKeyAt(v.data, i) != key {
		return false
	}
	for j := i; j+1 < cap; j++ {
		k, val := dictKeyAt(v.data, j+1), dictValAt(v.data, j+1)
		dictSetSlot(v.data, j, k, val)
		if k.IsNull() {
			break
		}
	}
	dictSetSlot(v.data, cap-1, ValNull, ValNull)
	return true
}

// Sort re-establishes descending Val-key order over all non-empty entries.
// The garbage collector calls this on every reached Dict after a move,
// since relocation changes every key's Val (its offset) and therefore its
// place in the order.
func (v Value) Sort() {
	v.requireKind(KindDict)
	cap := dictCapacity(v.data)
	type pair struct{ k, val Val }
	pairs := make([]pair, 0, cap)
	for i := uint32(0); i < cap; i++ {
		k := dictKeyAt(v.data, i)
		if k.IsNull() {
			continue
		}
		pairs = append(pairs, pair{k, dictValAt(v.data, i)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k > pairs[j].k })
	var i uint32
	for ; i < uint32(len(pairs)); i++ {
		dictSetSlot(v.data, i, pairs[i].k, pairs[i].val)
	}
	for ; i < cap; i++ {
		dictSetSlot(v.data, i, ValNull, ValNull)
	}
}

// Do iterates a Dict's non-empty entries in descending Val-key order,
// calling f for each. It stops early if f returns false.
func (v Value) Do(f func(key, val Val) bool) {
	v.requireKind(KindDict)
	cap := dictCapacity(v.data)
	for i := uint32(0); i < cap; i++ {
		k := dictKeyAt(v.data, i)
		if k.IsNull() {
			return
		}
		if !f(k, dictValAt(v.data, i)) {
			return
		}
	}
}

func growDict(h *Heap, v Value, newCapacity uint32) (Value, error) {
	oldCap := dictCapacity(v.data)
	if newCapacity < oldCap {
		return Value{}, &ErrINVAL{Src: "Grow: new Dict capacity smaller than old", Arg: newCapacity}
	}
	n, err := NewDictIn(h, newCapacity)
	if err != nil {
		return Value{}, err
	}
	var i uint32
	for ; i < oldCap; i++ {
		k, val := dictKeyAt(v.data, i), dictValAt(v.data, i)
		if k.IsNull() {
			break
		}
		dictSetSlot(n.data, i, k, val)
	}
	return n, nil
}

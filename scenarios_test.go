// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import (
	"bytes"
	"fmt"
	"os"
	"testing"
)

// TestScenarioCreateSaveReopen covers spec.md §8 end-to-end scenario 1: a
// heap built with a 4-slot root Array, saved to bytes and reconstructed via
// Existing, preserves its root's shape and contents.
func TestScenarioCreateSaveReopen(t *testing.T) {
	h := New(100000)
	defer Use(h)()

	root, err := NewArray(4)
	if err != nil {
		t.Fatal(err)
	}
	h.SetRoot(root)

	root.SetAt(0, Int(1234))
	root.SetAt(1, Int(-4567))

	cowabunga, err := NewString("Cowabunga!")
	if err != nil {
		t.Fatal(err)
	}
	root.SetAt(2, cowabunga.Val())
	root.SetAt(3, cowabunga.Val())

	if _, err := NewString("Garbage!"); err != nil {
		t.Fatal(err)
	}

	h2, err := Existing(h.Bytes(), h.Capacity())
	if err != nil {
		t.Fatal(err)
	}

	r := h2.Root()
	if !r.IsArray() || r.Len() != 4 {
		t.Fatalf("reopened root: IsArray=%v Len=%d", r.IsArray(), r.Len())
	}
	if r.At(0).AsInt() != 1234 {
		t.Fatalf("slot 0 = %d", r.At(0).AsInt())
	}
	if r.At(1).AsInt() != -4567 {
		t.Fatalf("slot 1 = %d", r.At(1).AsInt())
	}
	s2, s3 := r.AtValue(2), r.AtValue(3)
	if s2.AsString() != "Cowabunga!" || s3.AsString() != "Cowabunga!" {
		t.Fatalf("slots 2/3 = %q, %q", s2.AsString(), s3.AsString())
	}
	if r.At(2) != r.At(3) {
		t.Fatal("slots 2 and 3 should share one String block (identical Val bits)")
	}

	var blocks int
	h2.VisitAll(func(Block) { blocks++ })
	if blocks != 3 {
		t.Fatalf("reopened heap has %d blocks, want 3 (root Array, shared String, Garbage! String)", blocks)
	}

	// Scenarios 2 and 3 continue directly from this reopened heap.
	scenarioGCReclaimsUnreachable(t, h2)
}

// scenarioGCReclaimsUnreachable covers spec.md §8 scenario 2: running GC
// without rooting "Garbage!" reclaims it, leaving exactly the root Array and
// the shared "Cowabunga!" String.
func scenarioGCReclaimsUnreachable(t *testing.T, h *Heap) {
	before := h.Used()
	h.RunGC()
	if h.Used() >= before {
		t.Fatalf("Used() after GC = %d, want strictly less than %d", h.Used(), before)
	}

	var blocks int
	h.VisitAll(func(Block) { blocks++ })
	if blocks != 2 {
		t.Fatalf("post-GC block count = %d, want 2", blocks)
	}

	scenarioGCPreservesHandles(t, h)
}

// scenarioGCPreservesHandles covers spec.md §8 scenario 3: Handles to the
// root Array and the "Cowabunga!" String survive a second GC and keep the
// Array's slots pointing at the same post-GC String block as the handle.
func scenarioGCPreservesHandles(t *testing.T, h *Heap) {
	defer Use(h)()

	root := h.Root()
	rootObj, ok := AsObject(root)
	if !ok {
		t.Fatal("root is not an Object")
	}
	rootHandle := NewObjectHandle(&rootObj)
	defer rootHandle.Release()

	cowabunga := rootObj.AtValue(2)
	cowabungaHandle := NewHandle(&cowabunga)
	defer cowabungaHandle.Release()

	h.RunGC()

	if !rootObj.IsArray() {
		t.Fatal("root handle no longer an Array after second GC")
	}
	if cowabunga.AsString() != "Cowabunga!" {
		t.Fatal("String handle content did not survive second GC")
	}
	slot2Off, _ := rootObj.AtValue(2).Offset()
	slot3Off, _ := rootObj.AtValue(3).Offset()
	handleOff, _ := cowabunga.Offset()
	if slot2Off != handleOff || slot3Off != handleOff {
		t.Fatal("root's slots no longer point at the same post-GC block as the handle")
	}
}

// TestScenarioSymbolTableGrowth covers spec.md §8 scenario 4.
func TestScenarioSymbolTableGrowth(t *testing.T) {
	h := New(10000)
	defer Use(h)()

	if _, err := Intern("foo"); err != nil {
		t.Fatal(err)
	}
	if _, err := Intern("bar"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("Symbol #%d", i)
		created, err := Intern(name)
		if err != nil {
			t.Fatalf("Intern(%q): %v", name, err)
		}
		found, ok := FindSymbol(name)
		if !ok || found.Val() != created.Val() {
			t.Fatalf("FindSymbol(%q) after Intern(%q) mismatch", name, name)
		}
	}

	if got := h.SymbolCount(); got != 102 {
		t.Fatalf("SymbolCount() = %d, want 102", got)
	}

	h2, err := Existing(h.Bytes(), h.Capacity())
	if err != nil {
		t.Fatal(err)
	}
	bar, ok := FindSymbolIn(h2, "bar")
	if !ok {
		t.Fatal("\"bar\" not found after reopening")
	}
	if bar.AsString() != "bar" {
		t.Fatalf("bar.AsString() = %q", bar.AsString())
	}
}

// TestScenarioDictOrderingAfterGC covers spec.md §8 scenario 5.
func TestScenarioDictOrderingAfterGC(t *testing.T) {
	h := New(1 << 16)
	defer Use(h)()

	d, err := NewDict(5)
	if err != nil {
		t.Fatal(err)
	}
	h.SetRoot(d)

	type recorded struct {
		key    *Value
		handle *Handle
		val    int32
	}
	var recs []recorded
	for i := int32(0); i < 5; i++ {
		k, err := NewString(fmt.Sprintf("k%d", i))
		if err != nil {
			t.Fatal(err)
		}
		if err := d.Set(k.Val(), Int(i)); err != nil {
			t.Fatal(err)
		}
		recs = append(recs, recorded{key: &k, handle: NewHandle(&k), val: i})
	}
	defer func() {
		for _, r := range recs {
			r.handle.Release()
		}
	}()

	h.RunGC()

	dict := h.Root()
	for _, r := range recs {
		got, ok := dict.Find(r.key.Val())
		if !ok {
			t.Fatalf("key %q missing after GC", r.key.AsString())
		}
		if got.AsInt() != r.val {
			t.Fatalf("value for key %q = %d, want %d", r.key.AsString(), got.AsInt(), r.val)
		}
	}

	var last Val
	first := true
	dict.Do(func(k, v Val) bool {
		if !first && k > last {
			t.Fatal("Dict entries not in descending Val-key order after GC")
		}
		last, first = k, false
		return true
	})
}

// TestScenarioAllocationFailureHandlerRetries covers spec.md §8 scenario 6:
// a failure handler that runs GC lets a fill loop succeed inside a heap too
// small to hold every allocation ever made, only the live set at any time.
func TestScenarioAllocationFailureHandlerRetries(t *testing.T) {
	const capacity = 500000
	const slots = 500
	const blobSize = 1000

	h := New(capacity)
	defer Use(h)()

	h.SetFailureHandler(func(hp *Heap, requested uint32) bool {
		before := hp.Used()
		hp.RunGC()
		return hp.Used() < before
	})

	root, err := NewArray(slots)
	if err != nil {
		t.Fatal(err)
	}
	rootObj, ok := AsObject(root)
	if !ok {
		t.Fatal("AsObject(root) failed")
	}
	rootHandle := NewObjectHandle(&rootObj)
	defer rootHandle.Release()

	dropped := make(map[int]bool)
	for i := 0; i < slots; i++ {
		data := bytes.Repeat([]byte{byte(i % 256)}, blobSize)
		blob, err := NewBlob(data)
		if err != nil {
			t.Fatalf("allocating blob %d: %v", i, err)
		}
		rootObj.SetAt(uint32(i), blob.Val())

		if i >= 50 && i%50 == 0 {
			dropIdx := i - 50
			rootObj.SetAt(uint32(dropIdx), Nullish().Val())
			dropped[dropIdx] = true
		}
	}

	if h.Used() >= capacity {
		t.Fatalf("Used() = %d, want strictly less than capacity %d", h.Used(), capacity)
	}

	for i := 0; i < slots; i++ {
		v := rootObj.AtValue(uint32(i))
		if dropped[i] {
			if !v.IsNullish() {
				t.Fatalf("slot %d should be nullish", i)
			}
			continue
		}
		got := v.AsBlob()
		want := bytes.Repeat([]byte{byte(i % 256)}, blobSize)
		if !bytes.Equal(got, want) {
			t.Fatalf("slot %d: blob content corrupted", i)
		}
	}
}

// TestScenarioSaveFileOpenFileRoundTrip exercises the supplemented disk
// persistence helpers against the same create-save-reopen shape as scenario
// 1, but through the filesystem instead of an in-memory byte slice.
func TestScenarioSaveFileOpenFileRoundTrip(t *testing.T) {
	h := New(8192)
	defer Use(h)()

	v, err := NewString("persisted")
	if err != nil {
		t.Fatal(err)
	}
	h.SetRoot(v)

	f, err := os.CreateTemp(t.TempDir(), "arenaheap-*.heap")
	if err != nil {
		t.Fatal(err)
	}
	name := f.Name()
	f.Close()

	if err := SaveFile(h, name); err != nil {
		t.Fatal(err)
	}

	h2, err := OpenFile(name, 8192)
	if err != nil {
		t.Fatal(err)
	}
	if got := h2.Root().AsString(); got != "persisted" {
		t.Fatalf("reopened root = %q", got)
	}
}

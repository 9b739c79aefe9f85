// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "testing"

func TestArrayBasics(t *testing.T) {
	h := New(4096)
	defer Use(h)()

	a, err := NewArray(4)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 4 {
		t.Fatalf("Len() = %d", a.Len())
	}
	for i := uint32(0); i < 4; i++ {
		if !a.At(i).IsNull() {
			t.Fatalf("fresh Array slot %d not null", i)
		}
	}
	a.SetAt(0, Int(1234))
	a.SetAt(1, Int(-4567))
	if a.At(0).AsInt() != 1234 || a.At(1).AsInt() != -4567 {
		t.Fatal("Array SetAt/At mismatch")
	}
}

func TestArrayAtValueResolvesHeap(t *testing.T) {
	h := New(4096)
	defer Use(h)()

	s, err := NewString("nested")
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewArray(1)
	if err != nil {
		t.Fatal(err)
	}
	a.SetAt(0, s.Val())
	if got := a.AtValue(0).AsString(); got != "nested" {
		t.Fatalf("AtValue(0).AsString() = %q", got)
	}
}

func TestGrowArray(t *testing.T) {
	h := New(4096)
	defer Use(h)()

	a, err := NewArray(2)
	if err != nil {
		t.Fatal(err)
	}
	a.SetAt(0, Int(1))
	a.SetAt(1, Int(2))

	bigger, err := Grow(a, 5)
	if err != nil {
		t.Fatal(err)
	}
	if bigger.Len() != 5 {
		t.Fatalf("grown Len() = %d", bigger.Len())
	}
	if bigger.At(0).AsInt() != 1 || bigger.At(1).AsInt() != 2 {
		t.Fatal("grown Array lost original contents")
	}
	for i := uint32(2); i < 5; i++ {
		if !bigger.At(i).IsNull() {
			t.Fatalf("grown Array slot %d should be null", i)
		}
	}
}

func TestGrowArrayShrinkRejected(t *testing.T) {
	h := New(4096)
	defer Use(h)()

	a, err := NewArray(5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Grow(a, 2); err == nil {
		t.Fatal("expected error shrinking via Grow")
	}
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "testing"

func TestUseLargeMeta(t *testing.T) {
	cases := []struct {
		size  uint32
		large bool
	}{
		{0, true},  // 2+0 < 4
		{1, true},  // 2+1 < 4
		{2, false}, // 2+2 == 4
		{10, false},
		{MaxSmallDataSize - 1, false},
		{MaxSmallDataSize, true},
		{MaxSmallDataSize + 1, true},
	}
	for _, c := range cases {
		if got := useLargeMeta(c.size); got != c.large {
			t.Errorf("useLargeMeta(%d) = %v, want %v", c.size, got, c.large)
		}
	}
}

func TestBlockByteSizeNeverUnderMinimum(t *testing.T) {
	for size := uint32(0); size < 16; size++ {
		if got := blockByteSize(size); got < minBlockBytes {
			t.Errorf("blockByteSize(%d) = %d, under minimum %d", size, got, minBlockBytes)
		}
	}
}

func TestAllocBlockHeaderRoundTrip(t *testing.T) {
	h := New(4096)
	b, err := h.AllocBlock(37, TypeBlob)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Type(); got != TypeBlob {
		t.Fatalf("Type() = %v", got)
	}
	if got := b.DataSize(); got != 37 {
		t.Fatalf("DataSize() = %d", got)
	}
	if b.IsForwarded() {
		t.Fatal("freshly allocated block reports forwarded")
	}
}

func TestAllocBlockLargePayload(t *testing.T) {
	h := New(1 << 20)
	b, err := h.AllocBlock(2000, TypeBlob)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.DataSize(); got != 2000 {
		t.Fatalf("DataSize() = %d", got)
	}
}

func TestForwardingAddress(t *testing.T) {
	h := New(4096)
	b, err := h.AllocBlock(16, TypeString)
	if err != nil {
		t.Fatal(err)
	}
	b.SetForwardingAddress(9999)
	if !b.IsForwarded() {
		t.Fatal("SetForwardingAddress did not set forwarded bit")
	}
	if got := b.ForwardingAddress(); got != 9999 {
		t.Fatalf("ForwardingAddress() = %d", got)
	}
}

func TestVisitedBit(t *testing.T) {
	h := New(4096)
	b, err := h.AllocBlock(4, TypeArray)
	if err != nil {
		t.Fatal(err)
	}
	if b.IsVisited() {
		t.Fatal("fresh block already visited")
	}
	b.SetVisited()
	if !b.IsVisited() {
		t.Fatal("SetVisited had no effect")
	}
	b.ClearVisited()
	if b.IsVisited() {
		t.Fatal("ClearVisited had no effect")
	}
}

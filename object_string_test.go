// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "testing"

func TestStringRoundTrip(t *testing.T) {
	h := New(4096)
	defer Use(h)()

	v, err := NewString("Cowabunga!")
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsString() {
		t.Fatal("NewString result is not IsString")
	}
	if got := v.AsString(); got != "Cowabunga!" {
		t.Fatalf("AsString() = %q", got)
	}
}

func TestStringEmpty(t *testing.T) {
	h := New(4096)
	defer Use(h)()

	v, err := NewString("")
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "" {
		t.Fatalf("AsString() = %q, want empty", v.AsString())
	}
}

func TestAsStringWrongKindPanics(t *testing.T) {
	h := New(4096)
	defer Use(h)()

	v, err := NewNumber(5)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling AsString on an Int")
		}
	}()
	_ = v.AsString()
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "fmt"

// ErrINVAL reports an invalid argument passed to an API that cannot proceed:
// a handle out of range, a negative size, an offset outside the heap, etc.
// The shape mirrors lldb's ErrINVAL — a short description plus the offending
// value — so callers can match on type rather than parse a message.
type ErrINVAL struct {
	Src string
	Arg interface{}
}

func (e *ErrINVAL) Error() string {
	if e.Arg == nil {
		return e.Src
	}
	return fmt.Sprintf("%s: %v", e.Src, e.Arg)
}

// ErrCorrupt reports a structural inconsistency found while validating a
// heap image: bad magic, a root or symbol-table offset outside the used
// range, or a symbol-table field that does not point at an Array.
type ErrCorrupt struct {
	Src string
	Arg interface{}
}

func (e *ErrCorrupt) Error() string {
	if e.Arg == nil {
		return "corrupt heap: " + e.Src
	}
	return fmt.Sprintf("corrupt heap: %s: %v", e.Src, e.Arg)
}

// ErrNoSpace reports that an allocation could not be satisfied even after
// invoking the allocation-failure handler (or none was registered).
type ErrNoSpace struct {
	Requested uint32
	Capacity  uint32
}

func (e *ErrNoSpace) Error() string {
	return fmt.Sprintf("arenaheap: out of space (requested %d, capacity %d)", e.Requested, e.Capacity)
}

// ErrFull reports that a fixed-capacity Dict or Vector cannot accept another
// entry.
type ErrFull struct {
	Src string
}

func (e *ErrFull) Error() string { return e.Src + ": full" }

// ErrWrongType reports a kind-specific accessor (AsString, AsInt, Len, ...)
// called on a Value of another Kind, or Grow given a non-container.
// Production callers should check the Is predicates (IsString, IsArray, ...)
// first and never hit this.
type ErrWrongType struct {
	Want, Got Kind
}

func (e *ErrWrongType) Error() string {
	return fmt.Sprintf("arenaheap: wrong type: want %v, got %v", e.Want, e.Got)
}

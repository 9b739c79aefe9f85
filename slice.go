// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "encoding/binary"

// A Slice is a (pointer, length) pair describing a contiguous run of bytes
// inside a Heap's backing storage. It is the uniform currency used to refer
// to block payloads, whether they're read as raw bytes or as a run of Vals;
// it never copies or owns memory, so it is only valid until the owning Heap
// next moves or grows.
type Slice struct {
	base []byte
	off  uint32
	size uint32
}

func sliceOf(base []byte, off, size uint32) Slice {
	return Slice{base: base, off: off, size: size}
}

// Bytes returns the slice's bytes as a normal Go []byte, aliasing the Heap's
// backing storage.
func (s Slice) Bytes() []byte { return s.base[s.off : s.off+s.size] }

// Offset is the byte offset of the slice's first byte within its Heap.
func (s Slice) Offset() uint32 { return s.off }

// Len is the length of the slice in bytes.
func (s Slice) Len() uint32 { return s.size }

// NumVals returns the number of whole 4-byte Vals the slice holds.
func (s Slice) NumVals() uint32 { return s.size / 4 }

// ValAt reads the i'th little-endian Val word from the slice.
func (s Slice) ValAt(i uint32) Val {
	b := s.Bytes()
	return Val(binary.LittleEndian.Uint32(b[i*4 : i*4+4]))
}

// SetValAt writes the i'th little-endian Val word into the slice.
func (s Slice) SetValAt(i uint32, v Val) {
	b := s.Bytes()
	binary.LittleEndian.PutUint32(b[i*4:i*4+4], uint32(v))
}

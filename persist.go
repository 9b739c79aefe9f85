// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import (
	"io"
	"os"
)

// SaveFile writes h's in-use bytes (header through cursor) to name,
// truncating or creating the file as needed. The file's contents are exactly h.Bytes(); OpenFile
// reads them back unchanged.
func SaveFile(h *Heap, name string) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(h.Bytes()); err != nil {
		return err
	}
	return f.Sync()
}

// OpenFile reads a heap image previously written by SaveFile and validates
// it via Existing. capacity, if nonzero, lets the reopened heap grow beyond
// the saved image's size; 0 means the heap is fixed at its saved size.
func OpenFile(name string, capacity uint32) (*Heap, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := uint32(fi.Size())
	if capacity < size {
		capacity = size
	}

	contents := make([]byte, size)
	if _, err := io.ReadFull(f, contents); err != nil {
		return nil, err
	}

	return Existing(contents, capacity)
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

import "encoding/binary"

// A Type is the 3-bit code packed into a block's meta word identifying which
// object kind the block's payload holds.
type Type uint8

const (
	TypeBigInt Type = iota
	TypeFloat
	TypeString
	TypeSymbol
	TypeBlob
	TypeArray
	TypeVector
	TypeDict
)

func (t Type) String() string {
	switch t {
	case TypeBigInt:
		return "BigInt"
	case TypeFloat:
		return "Float"
	case TypeString:
		return "String"
	case TypeSymbol:
		return "Symbol"
	case TypeBlob:
		return "Blob"
	case TypeArray:
		return "Array"
	case TypeVector:
		return "Vector"
	case TypeDict:
		return "Dict"
	default:
		return "Type(?)"
	}
}

/*

Block meta word

Every block (the storage for every non-immediate Value) begins with a meta
word, packed little-endian, bit 0 first:

	bit 0       forwarded
	bits 1..3   type (one of the eight kinds above)
	bit 4       large (0 = 2-byte meta, 1 = 4-byte meta)
	bit 5       visited
	bits 6..15  (small form) payload size in bytes, 0..1023
	bits 6..31  (large form) payload size in bytes, 0..2^26-1

Because the large bit lives in the first byte, a linear walk over a heap can
always tell from one byte how many more meta bytes to read, without knowing
the block's type in advance.

When bit 0 (forwarded) is set, the remaining 31 bits of the first four bytes
of the block (irrespective of which meta form the block was allocated with)
are instead a heap offset: the new location of the block after a GC move. The
rest of the block's bytes are unspecified once forwarded.

The smallest allocatable block is 4 bytes: enough room for the meta word
always to be safely overwritten by a 4-byte forwarding address during GC. A
block whose natural meta+payload size would be smaller than 4 bytes is
allocated with the large (4-byte) meta form instead of the small one, even
though its payload would fit the small form, specifically so the 4-byte
forwarding write never runs past the block's end.

*/

const (
	metaForwardedBit = 1 << 0
	metaTypeShift    = 1
	metaTypeMask     = 0x7
	metaLargeBit     = 1 << 4
	metaVisitedBit   = 1 << 5
	metaSizeShift    = 6

	smallMetaBytes = 2
	largeMetaBytes = 4

	// MaxSmallDataSize is one more than the largest payload size that
	// still fits the 2-byte (small) meta form (10 size bits).
	MaxSmallDataSize = 1 << 10
	// MaxLargeDataSize is one more than the largest payload size the
	// 4-byte (large) meta form can represent (26 size bits).
	MaxLargeDataSize = 1 << 26

	minBlockBytes = 4
)

// useLargeMeta decides, for a given payload size, whether the block must use
// the 4-byte meta form: either because the payload is too big for the small
// form, or because 2+dataSize would be under the 4-byte minimum block size.
func useLargeMeta(dataSize uint32) bool {
	return dataSize >= MaxSmallDataSize || smallMetaBytes+dataSize < minBlockBytes
}

// A Block is a header+payload region living inside a Heap: the storage for
// every non-immediate Value. Block is a thin (heap, offset) view, not a copy;
// reads and writes go straight through to the heap's backing bytes.
type Block struct {
	heap *Heap
	off  uint32
}

func blockAt(h *Heap, off uint32) Block { return Block{heap: h, off: off} }

func (b Block) metaBytes() []byte { return b.heap.bytes[b.off:] }

func (b Block) isLarge() bool { return b.metaBytes()[0]&metaLargeBit != 0 }

func (b Block) rawMeta() uint32 {
	if b.isLarge() {
		return binary.LittleEndian.Uint32(b.metaBytes()[:4])
	}
	return uint32(binary.LittleEndian.Uint16(b.metaBytes()[:2]))
}

// Type returns the block's decoded type code. Calling Type on a forwarded
// block is a programming error; check IsForwarded first.
func (b Block) Type() Type { return Type((b.rawMeta() >> metaTypeShift) & metaTypeMask) }

// DataSize is the payload size in bytes, as encoded in the meta word.
func (b Block) DataSize() uint32 { return b.rawMeta() >> metaSizeShift }

func (b Block) headerSize() uint32 {
	if b.isLarge() {
		return largeMetaBytes
	}
	return smallMetaBytes
}

// Data returns the block's payload as a Slice. Reading Data on a forwarded
// block is meaningless; the bytes have been overwritten by the forwarding
// address.
func (b Block) Data() Slice {
	start := b.off + b.headerSize()
	return sliceOf(b.heap.bytes, start, b.DataSize())
}

// Offset is the block's own byte offset within its Heap.
func (b Block) Offset() uint32 { return b.off }

// NextBlock returns the offset of the byte immediately following this
// block's payload — the starting offset of the next block in heap order.
func (b Block) NextBlock() uint32 { return b.off + b.headerSize() + b.DataSize() }

// IsForwarded reports whether GC has relocated this block; if so its
// payload bytes are no longer valid and ForwardingAddress gives the new
// location.
func (b Block) IsForwarded() bool { return b.metaBytes()[0]&metaForwardedBit != 0 }

// ForwardingAddress returns the heap offset this (forwarded) block was
// moved to.
func (b Block) ForwardingAddress() uint32 {
	word := binary.LittleEndian.Uint32(b.metaBytes()[:4])
	return word >> 1
}

// SetForwardingAddress overwrites the first four bytes of the block with a
// forwarding pointer to pos, marking the block forwarded. Any remaining
// payload bytes are left as-is (unspecified by contract; GC never reads
// them again).
func (b Block) SetForwardingAddress(pos uint32) {
	word := (pos << 1) | metaForwardedBit
	binary.LittleEndian.PutUint32(b.metaBytes()[:4], word)
}

// IsVisited reports the traversal bit, used by Heap.Visit to dedupe a
// reachability walk.
func (b Block) IsVisited() bool { return b.metaBytes()[0]&metaVisitedBit != 0 }

func (b Block) setMetaBit(bit byte, set bool) {
	p := &b.metaBytes()[0]
	if set {
		*p |= bit
	} else {
		*p &^= bit
	}
}

// SetVisited sets the traversal bit.
func (b Block) SetVisited() { b.setMetaBit(metaVisitedBit, true) }

// ClearVisited clears the traversal bit.
func (b Block) ClearVisited() { b.setMetaBit(metaVisitedBit, false) }

// writeHeader initializes a freshly bump-allocated block's meta word. It is
// only ever called once, by Heap.AllocBlock, immediately after reserving the
// block's bytes.
func (b Block) writeHeader(typ Type, dataSize uint32) {
	large := useLargeMeta(dataSize)
	meta := uint32(typ&metaTypeMask) << metaTypeShift
	if large {
		meta |= metaLargeBit
		meta |= dataSize << metaSizeShift
		binary.LittleEndian.PutUint32(b.heap.bytes[b.off:b.off+4], meta)
		return
	}
	meta |= dataSize << metaSizeShift
	binary.LittleEndian.PutUint16(b.heap.bytes[b.off:b.off+2], uint16(meta))
}

// blockByteSize returns the total bytes (meta + payload) a block of dataSize
// would occupy, without allocating anything.
func blockByteSize(dataSize uint32) uint32 {
	if useLargeMeta(dataSize) {
		return largeMetaBytes + dataSize
	}
	return smallMetaBytes + dataSize
}

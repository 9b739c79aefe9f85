// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

/*

Val is the 32-bit immediate word every heap-resident reference boils down
to. Its low bit distinguishes small integers from everything else:

	bit 0 == 1: the high 31 bits are a two's-complement signed integer.
	bit 0 == 0, word == 0:           null
	bit 0 == 0, word == valFalseBit: false
	bit 0 == 0, word == valTrueBit:  true
	bit 0 == 0, word == ValNullish:  nullish (an "absent but present" marker)
	bit 0 == 0, word >  ValNullish:  an object reference; word>>1 is the
	                                 referenced block's heap offset.

Because valFalseBit/valTrueBit/ValNullish are the three smallest nonzero
even words, any even word greater than all three can only be an object
offset, which keeps IsObject a single comparison plus a mask — no table
lookup, no branching on type.

*/

type Val uint32

const (
	ValNull    Val = 0
	valFalseBit Val = 2
	valTrueBit  Val = 4
	ValNullish Val = 6
)

const (
	// MinInt and MaxInt bound the range of integers Val can hold directly;
	// values outside this range must be boxed as a BigInt block instead.
	MinInt = -(1 << 30)
	MaxInt = (1 << 30) - 1
)

// Bool returns the Val for a boolean.
func Bool(b bool) Val {
	if b {
		return valTrueBit
	}
	return valFalseBit
}

// Int returns the Val for a small integer. The caller must ensure n is in
// [MinInt, MaxInt]; use TryInt to check first.
func Int(n int32) Val { return Val(uint32(n)<<1) | 1 }

// TryInt returns the Val for n and true if n fits in the small-int range,
// or the zero Val and false if n must be boxed as a BigInt instead.
func TryInt(n int64) (Val, bool) {
	if n < MinInt || n > MaxInt {
		return 0, false
	}
	return Int(int32(n)), true
}

func objectVal(off uint32) Val { return Val(off << 1) }

// IsNull reports whether v is the null immediate.
func (v Val) IsNull() bool { return v == ValNull }

// IsNullish reports whether v is the nullish immediate.
func (v Val) IsNullish() bool { return v == ValNullish }

// IsBool reports whether v is a boolean immediate.
func (v Val) IsBool() bool { return v == valFalseBit || v == valTrueBit }

// AsBool returns v's boolean value. Only meaningful if IsBool(v).
func (v Val) AsBool() bool { return v == valTrueBit }

// IsInt reports whether v is a small-integer immediate.
func (v Val) IsInt() bool { return v&1 == 1 }

// AsInt returns v's integer value. Only meaningful if IsInt(v). The shift is
// an arithmetic (sign-extending) shift on the underlying int32, which
// recovers n exactly regardless of sign since n was encoded as (n<<1)|1.
func (v Val) AsInt() int32 { return int32(v) >> 1 }

// IsObject reports whether v is a reference into the heap. This is the one
// tag test required to be a cheap, branch-free bitwise check: evenness plus
// a lower bound.
func (v Val) IsObject() bool { return v&1 == 0 && v > ValNullish }

// Offset returns the heap offset v refers to, and true, if v IsObject.
// Otherwise it returns (0, false).
func (v Val) Offset() (uint32, bool) {
	if !v.IsObject() {
		return 0, false
	}
	return uint32(v) >> 1, true
}

// Equal is bitwise Val equality: two object Vals are equal iff they name the
// same block offset. Strings, arrays, and dicts are never compared
// structurally by Val equality — only by identity.
func (v Val) Equal(other Val) bool { return v == other }

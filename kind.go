// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// A Kind is the full dynamic type of a Value: Block.Type's eight object
// kinds, plus the four immediate kinds Block knows nothing about.
type Kind int

const (
	KindNull Kind = iota
	KindNullish
	KindBool
	KindInt
	KindBigInt
	KindFloat
	KindString
	KindSymbol
	KindBlob
	KindArray
	KindVector
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindNullish:
		return "Nullish"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindBigInt:
		return "BigInt"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindSymbol:
		return "Symbol"
	case KindBlob:
		return "Blob"
	case KindArray:
		return "Array"
	case KindVector:
		return "Vector"
	case KindDict:
		return "Dict"
	default:
		return "Kind(?)"
	}
}

// typeKind maps a block Type to its Kind. Every object Type has exactly one
// corresponding Kind.
func typeKind(t Type) Kind {
	switch t {
	case TypeBigInt:
		return KindBigInt
	case TypeFloat:
		return KindFloat
	case TypeString:
		return KindString
	case TypeSymbol:
		return KindSymbol
	case TypeBlob:
		return KindBlob
	case TypeArray:
		return KindArray
	case TypeVector:
		return KindVector
	case TypeDict:
		return KindDict
	default:
		panic("arenaheap: unknown block type")
	}
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arenaheap

// An Object is a Value statically known to be a reference into the heap
// (never an immediate). It exists so code that only ever deals in block
// references — a dict's keys, a container's elements once dereferenced —
// doesn't have to re-check IsObject at every step; see spec.md's GLOSSARY.
type Object struct{ Value }

// AsObject returns v narrowed to an Object, and true, if v.IsObject().
func AsObject(v Value) (Object, bool) {
	if !v.IsObject() {
		return Object{}, false
	}
	return Object{v}, true
}

// Block returns the underlying Block this Object refers to.
func (o Object) Block() Block { return o.block() }

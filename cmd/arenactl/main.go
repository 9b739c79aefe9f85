// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Arenactl is a small inspection and smoke-test tool for arenaheap images.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-arena/arenaheap"
)

var (
	oFile = flag.String("f", "test.heap", "heap image file")
	oCap  = flag.Uint("cap", 1<<20, "capacity in bytes for a new heap")
	oStat = flag.Bool("stat", false, "print header/usage stats for an existing image and exit")
	oDemo = flag.Bool("demo", false, "build a small demo heap, save it, reopen it, run GC, and print usage")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	switch {
	case *oStat:
		stat(*oFile)
	case *oDemo:
		demo(*oFile, uint32(*oCap))
	default:
		flag.Usage()
	}
}

func stat(file string) {
	h, err := arenaheap.OpenFile(file, 0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("capacity  %d\n", h.Capacity())
	fmt.Printf("used      %d\n", h.Used())
	fmt.Printf("symbols   %d\n", h.SymbolCount())
	root := h.Root()
	fmt.Printf("root kind %v\n", root.Kind())
}

func demo(file string, capacity uint32) {
	h := arenaheap.New(capacity)
	defer arenaheap.Use(h)()

	greeting, err := arenaheap.NewString("Cowabunga!")
	if err != nil {
		log.Fatal(err)
	}
	count, err := arenaheap.NewNumber(1234)
	if err != nil {
		log.Fatal(err)
	}

	root, err := arenaheap.NewArray(2)
	if err != nil {
		log.Fatal(err)
	}
	root.SetAt(0, greeting.Val())
	root.SetAt(1, count.Val())
	h.SetRoot(root)

	if err := arenaheap.SaveFile(h, file); err != nil {
		log.Fatal(err)
	}
	log.Printf("saved %s: %d/%d bytes used", file, h.Used(), h.Capacity())

	h2, err := arenaheap.OpenFile(file, capacity)
	if err != nil {
		log.Fatal(err)
	}
	r2 := h2.Root()
	log.Printf("reopened %s: root kind %v, len %d", file, r2.Kind(), r2.Len())

	h2.RunGC()
	log.Printf("after GC: %d/%d bytes used", h2.Used(), h2.Capacity())
}

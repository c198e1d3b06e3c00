// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem_test

import (
	"fmt"

	"github.com/vmem/sparsemem"
)

func ExampleMemory_write() {
	m, err := sparsemem.FromBlocks([]sparsemem.RawBlock{
		{Start: 5, Data: []byte("abc")},
		{Start: 10, Data: []byte("xy")},
	}, 0, sparsemem.Bounds{}, true, true)
	if err != nil {
		fmt.Println(err)
		return
	}

	m.Write(7, []byte("ZZZZ"))
	for _, rb := range m.ToBlocks(nil, nil) {
		fmt.Printf("%d: %q\n", rb.Start, rb.Data)
	}
	// Output:
	// 5: "abZZZZy"
}

func ExampleMemory_flood() {
	m, err := sparsemem.FromBlocks([]sparsemem.RawBlock{
		{Start: 5, Data: []byte("abc")},
		{Start: 10, Data: []byte("xy")},
	}, 0, sparsemem.Bounds{}, true, true)
	if err != nil {
		fmt.Println(err)
		return
	}

	start, endex := sparsemem.Address(4), sparsemem.Address(13)
	if err := m.Flood(&start, &endex, []byte(".")); err != nil {
		fmt.Println(err)
		return
	}
	for _, rb := range m.ToBlocks(nil, nil) {
		fmt.Printf("%d: %q\n", rb.Start, rb.Data)
	}
	// Output:
	// 4: ".abc..xy."
}

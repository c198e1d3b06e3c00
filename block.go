// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

// Address names a cell in the virtual address space. The data model
// calls for an arbitrary-precision signed integer; per the design notes
// this implementation statically restricts it to a 64-bit signed range,
// which is sufficient for every realistic address space and keeps the
// block-vector arithmetic branch-free.
type Address = int64

// Byte is a stored cell value. Absence (no byte stored) is modeled at
// the API boundary as an OptByte, never as a Byte value of zero.
type Byte = byte

// OptByte is a byte that may be absent. The zero value is absent.
type OptByte struct {
	Value   Byte
	Present bool
}

// Some wraps a present byte value.
func Some(b Byte) OptByte { return OptByte{Value: b, Present: true} }

// None is the absent value.
var None = OptByte{}

// block is a contiguous populated run starting at Start. Data is never
// empty: invariant I1.
type block struct {
	Start Address
	Data  []Byte
}

func (b *block) endex() Address {
	return b.Start + Address(len(b.Data))
}

func (b *block) span() (Address, Address) {
	return b.Start, b.endex()
}

// clone returns a block with its own copy of Data.
func (b *block) clone() *block {
	data := make([]Byte, len(b.Data))
	copy(data, b.Data)
	return &block{Start: b.Start, Data: data}
}

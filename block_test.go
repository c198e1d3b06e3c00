// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

import "testing"

func TestOptByte(t *testing.T) {
	if None.Present {
		t.Fatalf("None.Present = true, want false")
	}
	v := Some(0x42)
	if !v.Present {
		t.Fatalf("Some(0x42).Present = false, want true")
	}
	if v.Value != 0x42 {
		t.Fatalf("got=%#x, want=%#x", v.Value, 0x42)
	}
	if zero := (OptByte{}); zero.Present {
		t.Fatalf("zero value OptByte.Present = true, want false")
	}
}

func TestBlockEndexSpan(t *testing.T) {
	b := &block{Start: 10, Data: []Byte{1, 2, 3}}
	if got, want := b.endex(), Address(13); got != want {
		t.Fatalf("got=%d, want=%d", got, want)
	}
	s, e := b.span()
	if s != 10 || e != 13 {
		t.Fatalf("span()=(%d,%d), want=(10,13)", s, e)
	}
}

func TestBlockClone(t *testing.T) {
	b := &block{Start: 5, Data: []Byte{9, 9, 9}}
	c := b.clone()
	c.Data[0] = 0
	if b.Data[0] != 9 {
		t.Fatalf("clone shares backing array: original mutated")
	}
	if c.Start != b.Start {
		t.Fatalf("got=%d, want=%d", c.Start, b.Start)
	}
}

// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

// View is a read-only windowed reference over a Memory sub-range (spec
// §4.4). It never copies; it borrows. Per the concurrency/resource
// model (spec §5), the caller contract is that the underlying Memory
// must not be mutated in a way that touches an acquired View's range
// while the View is live. AcquireView/Release track outstanding views
// with a simple borrow counter; Memory neither refuses nor reports a
// conflicting mutation (enforcement is optional per spec §5): no
// mutating operation consults the counter.
type View struct {
	m            *Memory
	start, endex Address
	released     bool
}

// AcquireView borrows a read-only window over [start, endex). Call
// Release when done.
func (m *Memory) AcquireView(start, endex Address) *View {
	m.viewCount++
	return &View{m: m, start: start, endex: endex}
}

// Release returns the borrow. Calling Release twice is a no-op.
func (v *View) Release() {
	if v.released {
		return
	}
	v.released = true
	v.m.viewCount--
}

// Span returns the view's [start, endex).
func (v *View) Span() (Address, Address) { return v.start, v.endex }

// Len is endex - start.
func (v *View) Len() int64 {
	if v.endex <= v.start {
		return 0
	}
	return int64(v.endex - v.start)
}

// Peek returns the byte at a, or the absence sentinel if a is outside
// the view's span or unpopulated.
func (v *View) Peek(a Address) OptByte {
	if a < v.start || a >= v.endex {
		return None
	}
	return v.m.Peek(a)
}

// ToBytes materialises the view; gaps become pattern (or 0x00).
func (v *View) ToBytes(pattern []Byte) []Byte {
	s, e := v.start, v.endex
	return v.m.ToBytes(&s, &e, pattern)
}

// Items iterates the view's populated (addr, byte) pairs.
func (v *View) Items() *ItemIter {
	s, e := v.start, v.endex
	return v.m.Items(&s, &e)
}

// Values iterates one OptByte per address across the view's span.
func (v *View) Values(pattern []Byte) *ValueIter {
	s, e := v.start, v.endex
	return v.m.Values(&s, &e, pattern)
}

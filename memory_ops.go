// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

// Peek returns the byte stored at a, or the absence sentinel. Bounds do
// not affect reads: a peek outside bounds still reports whatever is (or
// is not) stored there.
func (m *Memory) Peek(a Address) OptByte {
	if idx, ok := m.blocks.indexAt(a); ok {
		b := m.blocks.blocks[idx]
		return Some(b.Data[a-b.Start])
	}
	return None
}

// Poke overwrites a single cell. v.Present == false clears it. a must
// satisfy the active bounds, if any.
func (m *Memory) Poke(a Address, v OptByte) error {
	if !m.bounds.contains(a) {
		return &OutOfBoundsError{Start: a, Endex: a + 1}
	}
	if v.Present {
		m.blocks.write(a, []Byte{v.Value})
	} else {
		m.blocks.clear(a, a+1)
	}
	return nil
}

// writeClipped clips [start, start+len(data)) to bounds and writes the
// surviving portion, if any.
func (m *Memory) writeClipped(start Address, data []Byte) {
	if len(data) == 0 {
		return
	}
	endex := start + Address(len(data))
	cs, ce := m.bounds.clip(start, endex)
	if ce <= cs {
		return
	}
	m.blocks.write(cs, data[cs-start:ce-start])
}

// Write overwrites [a, a+len(src)), clipped to bounds.
func (m *Memory) Write(a Address, src []Byte) {
	m.writeClipped(a, src)
}

// WriteMemory overwrites starting at a with src's content, preserving
// src's internal gaps as gaps in the destination.
func (m *Memory) WriteMemory(a Address, src *Memory) {
	start := a
	end := a + Address(src.Len())
	cs, ce := m.bounds.clip(start, end)
	if ce > cs {
		m.blocks.clear(cs, ce)
	}
	srcStart := src.Start()
	for _, b := range src.blocks.blocks {
		rel := b.Start - srcStart
		m.writeClipped(a+rel, b.Data)
	}
}

// Insert shifts every cell at or past a right by len(src), then writes
// src at a. The insertion point is clamped to bounds; content pushed
// past bound_endex is discarded.
func (m *Memory) Insert(a Address, src []Byte) {
	if len(src) == 0 {
		return
	}
	if m.bounds.hasStart && a < m.bounds.start {
		a = m.bounds.start
	}
	if m.bounds.hasEndex && a > m.bounds.endex {
		a = m.bounds.endex
	}
	m.blocks.insert(a, src)
	m.clampToBounds()
}

// InsertMemory is like Insert but from another Memory, preserving its
// internal gaps.
func (m *Memory) InsertMemory(a Address, src *Memory) {
	size := Address(src.Len())
	if size == 0 {
		return
	}
	if m.bounds.hasStart && a < m.bounds.start {
		a = m.bounds.start
	}
	m.blocks.reserve(a, size)
	srcStart := src.Start()
	for _, b := range src.blocks.blocks {
		rel := b.Start - srcStart
		m.writeClipped(a+rel, b.Data)
	}
	m.clampToBounds()
}

// Delete removes [start, endex) and shifts subsequent content left to
// close the gap (compaction).
func (m *Memory) Delete(start, endex Address) {
	start, endex = m.bounds.clip(start, endex)
	if endex <= start {
		return
	}
	m.blocks.deleteRange(start, endex)
}

// Clear removes [start, endex), leaving a gap (no compaction).
func (m *Memory) Clear(start, endex Address) {
	start, endex = m.bounds.clip(start, endex)
	if endex <= start {
		return
	}
	m.blocks.clear(start, endex)
}

// Crop deletes everything outside [start, endex) without compacting.
func (m *Memory) Crop(start, endex Address) {
	start, endex = m.bounds.clip(start, endex)
	m.blocks.clear(minAddr, start)
	m.blocks.clear(endex, maxAddr)
}

// Cut extracts [start, endex), clears it from the source and returns
// the extracted Memory with bound applied.
func (m *Memory) Cut(start, endex Address, bound Bounds) *Memory {
	start, endex = m.bounds.clip(start, endex)
	out, _ := m.Extract(&start, &endex, nil, 1, &bound)
	m.blocks.clear(start, endex)
	return out
}

// Reserve shifts every cell at or past a right by size, leaving a gap.
func (m *Memory) Reserve(a Address, size Address) error {
	if size < 0 {
		return &ValueRangeError{Field: "size", Value: int64(size)}
	}
	if m.bounds.hasStart && a < m.bounds.start {
		a = m.bounds.start
	}
	m.blocks.reserve(a, size)
	m.clampToBounds()
	return nil
}

// Fill overwrites [start, endex) with pattern repeated and aligned to
// start.
func (m *Memory) Fill(start, endex *Address, pattern []Byte) error {
	if len(pattern) == 0 {
		return &ValueRangeError{Field: "pattern", Value: 0}
	}
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	cs, ce := m.bounds.clip(s, e)
	if ce <= cs {
		return nil
	}
	data := make([]Byte, ce-cs)
	n := Address(len(pattern))
	for i := range data {
		addr := cs + Address(i)
		off := ((addr-s)%n + n) % n
		data[i] = pattern[off]
	}
	m.blocks.write(cs, data)
	return nil
}

// Flood writes pattern only into gaps within [start, endex).
func (m *Memory) Flood(start, endex *Address, pattern []Byte) error {
	if len(pattern) == 0 {
		return &ValueRangeError{Field: "pattern", Value: 0}
	}
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	cs, ce := m.bounds.clip(s, e)
	if ce <= cs {
		return nil
	}
	n := Address(len(pattern))
	for _, g := range m.gapsWithin(cs, ce) {
		data := make([]Byte, g[1]-g[0])
		for i := range data {
			addr := g[0] + Address(i)
			off := ((addr-s)%n + n) % n
			data[i] = pattern[off]
		}
		m.blocks.write(g[0], data)
	}
	return nil
}

// Shift translates every block by offset; with bounds active, content
// pushed outside either bound is discarded.
func (m *Memory) Shift(offset Address) {
	m.blocks.shift(offset)
	m.clampToBounds()
}

// Append adds one byte at ContentEndex, growing the trailing block in
// place when possible to keep amortised append cost O(1).
func (m *Memory) Append(v Byte) {
	e := m.ContentEndex()
	if n := len(m.blocks.blocks); n > 0 {
		last := m.blocks.blocks[n-1]
		if last.endex() == e {
			last.Data = append(last.Data, v)
			return
		}
	}
	m.blocks.write(e, []Byte{v})
}

// Extend writes src at ContentEndex+offset.
func (m *Memory) Extend(src []Byte, offset Address) {
	m.writeClipped(m.ContentEndex()+offset, src)
}

// ExtendMemory is like Extend but from another Memory.
func (m *Memory) ExtendMemory(src *Memory, offset Address) {
	m.WriteMemory(m.ContentEndex()+offset, src)
}

// gapsWithin returns the gap intervals strictly inside [start, endex).
func (m *Memory) gapsWithin(start, endex Address) [][2]Address {
	var gaps [][2]Address
	cur := start
	lo := m.blocks.indexStart(start)
	hi := m.blocks.indexEndex(endex)
	for i := lo; i < hi; i++ {
		b := m.blocks.blocks[i]
		if b.Start > cur {
			e := b.Start
			if e > endex {
				e = endex
			}
			if e > cur {
				gaps = append(gaps, [2]Address{cur, e})
			}
		}
		if be := b.endex(); be > cur {
			cur = be
		}
	}
	if cur < endex {
		gaps = append(gaps, [2]Address{cur, endex})
	}
	return gaps
}

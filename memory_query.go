// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

import (
	"bytes"
	"encoding/hex"
)

func maxAddress(a, b Address) Address {
	if a > b {
		return a
	}
	return b
}

func minAddress(a, b Address) Address {
	if a < b {
		return a
	}
	return b
}

// Extract returns a new Memory holding the selected range. pattern, if
// non-empty, floods gaps within the range before subsampling. step, if
// greater than 1, keeps only every step-th address. bound, if non-nil,
// becomes the result's bounds.
func (m *Memory) Extract(start, endex *Address, pattern []Byte, step int, bound *Bounds) (*Memory, error) {
	if step < 1 {
		return nil, &ValueRangeError{Field: "step", Value: int64(step)}
	}
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)

	out := &Memory{}
	if e > s {
		lo := m.blocks.indexStart(s)
		hi := m.blocks.indexEndex(e)
		for i := lo; i < hi; i++ {
			b := m.blocks.blocks[i]
			bs := maxAddress(b.Start, s)
			be := minAddress(b.endex(), e)
			if be <= bs {
				continue
			}
			out.blocks.write(bs, b.Data[bs-b.Start:be-b.Start])
		}
		if len(pattern) > 0 {
			_ = out.Flood(&s, &e, pattern)
		}
	}

	if step > 1 {
		sub := &Memory{}
		for a := s; a < e; a += Address(step) {
			if v := out.Peek(a); v.Present {
				sub.blocks.write(a, []Byte{v.Value})
			}
		}
		out = sub
	}

	if bound != nil {
		out.bounds = *bound
		out.clampToBounds()
	}
	return out, nil
}

func (m *Memory) find(pattern []Byte, start, endex Address, reverse bool) (Address, bool) {
	if len(pattern) == 0 || endex <= start {
		return 0, false
	}
	lo := m.blocks.indexStart(start)
	hi := m.blocks.indexEndex(endex)
	if !reverse {
		for i := lo; i < hi; i++ {
			b := m.blocks.blocks[i]
			bs := maxAddress(b.Start, start)
			be := minAddress(b.endex(), endex)
			if be-bs < Address(len(pattern)) {
				continue
			}
			data := b.Data[bs-b.Start : be-b.Start]
			if idx := bytes.Index(data, pattern); idx >= 0 {
				return bs + Address(idx), true
			}
		}
		return 0, false
	}
	for i := hi - 1; i >= lo; i-- {
		b := m.blocks.blocks[i]
		bs := maxAddress(b.Start, start)
		be := minAddress(b.endex(), endex)
		if be-bs < Address(len(pattern)) {
			continue
		}
		data := b.Data[bs-b.Start : be-b.Start]
		if idx := bytes.LastIndex(data, pattern); idx >= 0 {
			return bs + Address(idx), true
		}
	}
	return 0, false
}

// Find returns the leftmost address where pattern matches contiguously
// within [start, endex), or ErrNotFound. Because blocks are never
// adjacent (spec invariant I3), a contiguous match can never span two
// blocks, so each block's Data is searched independently.
func (m *Memory) Find(pattern []Byte, start, endex *Address) (Address, error) {
	a, ok := m.find(pattern, m.resolveStart(start), m.resolveEndex(endex), false)
	if !ok {
		return 0, ErrNotFound
	}
	return a, nil
}

// RFind is like Find but returns the rightmost match.
func (m *Memory) RFind(pattern []Byte, start, endex *Address) (Address, error) {
	a, ok := m.find(pattern, m.resolveStart(start), m.resolveEndex(endex), true)
	if !ok {
		return 0, ErrNotFound
	}
	return a, nil
}

// OFind is like Find but reports absence via ok=false instead of an
// error.
func (m *Memory) OFind(pattern []Byte, start, endex *Address) (addr Address, ok bool) {
	return m.find(pattern, m.resolveStart(start), m.resolveEndex(endex), false)
}

// ORFind is like RFind but reports absence via ok=false instead of an
// error.
func (m *Memory) ORFind(pattern []Byte, start, endex *Address) (addr Address, ok bool) {
	return m.find(pattern, m.resolveStart(start), m.resolveEndex(endex), true)
}

// Index is an alias of Find.
func (m *Memory) Index(pattern []Byte, start, endex *Address) (Address, error) {
	return m.Find(pattern, start, endex)
}

// RIndex is an alias of RFind.
func (m *Memory) RIndex(pattern []Byte, start, endex *Address) (Address, error) {
	return m.RFind(pattern, start, endex)
}

// Count returns the number of non-overlapping matches of pattern within
// [start, endex).
func (m *Memory) Count(pattern []Byte, start, endex *Address) int {
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	count := 0
	for cur := s; cur < e; {
		a, ok := m.find(pattern, cur, e, false)
		if !ok {
			break
		}
		count++
		cur = a + Address(len(pattern))
	}
	return count
}

// EqualSpan returns the maximal run of equal bytes, or the maximal gap,
// surrounding a.
func (m *Memory) EqualSpan(a Address) (Address, Address, OptByte) {
	v := m.Peek(a)
	if !v.Present {
		return m.surroundingGap(a)
	}
	idx, _ := m.blocks.indexAt(a)
	b := m.blocks.blocks[idx]
	val := b.Data[a-b.Start]
	s, e := a, a+1
	for s > b.Start && b.Data[s-1-b.Start] == val {
		s--
	}
	for e < b.endex() && b.Data[e-b.Start] == val {
		e++
	}
	return s, e, Some(val)
}

// BlockSpan is like EqualSpan but at block granularity: the containing
// block's whole span, or the containing gap.
func (m *Memory) BlockSpan(a Address) (Address, Address, OptByte) {
	if idx, ok := m.blocks.indexAt(a); ok {
		b := m.blocks.blocks[idx]
		return b.Start, b.endex(), Some(b.Data[a-b.Start])
	}
	return m.surroundingGap(a)
}

func (m *Memory) surroundingGap(a Address) (Address, Address, OptByte) {
	lo := m.blocks.indexStart(a)
	start := minAddr
	if lo > 0 {
		start = m.blocks.blocks[lo-1].endex()
	}
	endex := maxAddr
	if lo < len(m.blocks.blocks) {
		endex = m.blocks.blocks[lo].Start
	}
	return start, endex, None
}

// ToBytes materialises [start, endex); gaps become pattern repeated (or
// 0x00 if pattern is empty).
func (m *Memory) ToBytes(start, endex *Address, pattern []Byte) []Byte {
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	if e <= s {
		return nil
	}
	out := make([]Byte, e-s)
	lo := m.blocks.indexStart(s)
	hi := m.blocks.indexEndex(e)
	for i := lo; i < hi; i++ {
		b := m.blocks.blocks[i]
		bs := maxAddress(b.Start, s)
		be := minAddress(b.endex(), e)
		if be <= bs {
			continue
		}
		copy(out[bs-s:be-s], b.Data[bs-b.Start:be-b.Start])
	}
	if len(pattern) > 0 {
		for _, g := range m.gapsWithin(s, e) {
			n := Address(len(pattern))
			for a := g[0]; a < g[1]; a++ {
				off := ((a-s)%n + n) % n
				out[a-s] = pattern[off]
			}
		}
	}
	return out
}

// ToBlocks returns the blocks overlapping [start, endex), clipped to
// it, as RawBlock pairs.
func (m *Memory) ToBlocks(start, endex *Address) []RawBlock {
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	if e <= s {
		return nil
	}
	var out []RawBlock
	lo := m.blocks.indexStart(s)
	hi := m.blocks.indexEndex(e)
	for i := lo; i < hi; i++ {
		b := m.blocks.blocks[i]
		bs := maxAddress(b.Start, s)
		be := minAddress(b.endex(), e)
		if be <= bs {
			continue
		}
		out = append(out, RawBlock{Start: bs, Data: append([]Byte(nil), b.Data[bs-b.Start:be-b.Start]...)})
	}
	return out
}

// Hex returns the hex encoding of the full populated contiguous span.
// It fails with ErrContiguityRequired if the memory is not contiguous.
func (m *Memory) Hex() (string, error) {
	if !m.Contiguous() {
		return "", ErrContiguityRequired
	}
	if m.ContentParts() == 0 {
		return "", nil
	}
	return hex.EncodeToString(m.blocks.blocks[0].Data), nil
}

// Validate checks invariants I1-I3 and that bounds (if set) enclose all
// block extents.
func (m *Memory) Validate() error {
	if err := m.blocks.validate(); err != nil {
		return err
	}
	if n := len(m.blocks.blocks); n > 0 {
		if m.bounds.hasStart && m.blocks.blocks[0].Start < m.bounds.start {
			return &InvariantBrokenError{Reason: "block starts before bound_start"}
		}
		if m.bounds.hasEndex && m.blocks.blocks[n-1].endex() > m.bounds.endex {
			return &InvariantBrokenError{Reason: "block ends after bound_endex"}
		}
	}
	if m.bounds.hasStart && m.bounds.hasEndex && m.bounds.start > m.bounds.endex {
		return &InvariantBrokenError{Reason: "bound_start > bound_endex"}
	}
	return nil
}

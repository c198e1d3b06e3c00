// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

// This file implements spec §4.3.3's lazy iterators. Each follows the
// bufio.Scanner shape: construct, then loop `for it.Next() { use it.X() }`.
// None of them materialise the full requested range up front; Values and
// Items walk address-by-address or block-by-block on demand, and Gaps
// (whose cardinality is bounded by the block count, not by the address
// range) is the one exception precomputed at construction time.

// ValueIter lazily yields one OptByte per address over a range.
type ValueIter struct {
	m          *Memory
	cur        Address
	base       Address
	lowerBound Address
	hasEndex   bool
	endex      Address
	pattern    []Byte
	reverse    bool

	addr  Address
	value OptByte
}

// Values returns a forward iterator over [start, endex) (defaulting to
// Span() on nil). If endex is nil and pattern is non-empty, the
// iterator is infinite, yielding the cyclic pattern for every gap cell
// forever.
func (m *Memory) Values(start, endex *Address, pattern []Byte) *ValueIter {
	s := m.resolveStart(start)
	it := &ValueIter{m: m, cur: s, base: s, pattern: pattern}
	switch {
	case endex != nil:
		it.endex, it.hasEndex = *endex, true
	case len(pattern) > 0:
		it.hasEndex = false
	default:
		it.endex, it.hasEndex = m.Endex(), true
	}
	return it
}

// RValues returns a reverse iterator over [start, endex).
func (m *Memory) RValues(start, endex *Address, pattern []Byte) *ValueIter {
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	return &ValueIter{m: m, cur: e - 1, base: s, lowerBound: s, pattern: pattern, reverse: true}
}

// Next advances the iterator, returning false once exhausted.
func (it *ValueIter) Next() bool {
	if it.reverse {
		if it.cur < it.lowerBound {
			return false
		}
	} else if it.hasEndex && it.cur >= it.endex {
		return false
	}
	v := it.m.Peek(it.cur)
	if !v.Present && len(it.pattern) > 0 {
		n := Address(len(it.pattern))
		off := ((it.cur-it.base)%n + n) % n
		v = Some(it.pattern[off])
	}
	it.addr, it.value = it.cur, v
	if it.reverse {
		it.cur--
	} else {
		it.cur++
	}
	return true
}

// Addr is the address of the value last yielded by Next.
func (it *ValueIter) Addr() Address { return it.addr }

// Value is the value last yielded by Next.
func (it *ValueIter) Value() OptByte { return it.value }

// ItemIter lazily yields populated (addr, byte) pairs, skipping gaps
// entirely, by walking the block vector directly.
type ItemIter struct {
	m       *Memory
	idx     int
	pos     Address
	lo, hi  Address
	reverse bool
	item    Item
}

// Items returns a forward iterator over populated addresses in
// [start, endex).
func (m *Memory) Items(start, endex *Address) *ItemIter {
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	idx := m.blocks.indexStart(s)
	it := &ItemIter{m: m, idx: idx, lo: s, hi: e}
	if idx < len(m.blocks.blocks) {
		it.pos = maxAddress(m.blocks.blocks[idx].Start, s)
	}
	return it
}

// RItems returns a reverse iterator over populated addresses in
// [start, endex).
func (m *Memory) RItems(start, endex *Address) *ItemIter {
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	idx := m.blocks.indexEndex(e) - 1
	it := &ItemIter{m: m, idx: idx, lo: s, hi: e, reverse: true}
	if idx >= 0 {
		it.pos = minAddress(m.blocks.blocks[idx].endex(), e) - 1
	}
	return it
}

// Next advances the iterator, returning false once exhausted.
func (it *ItemIter) Next() bool {
	blocks := it.m.blocks.blocks
	if !it.reverse {
		for it.idx < len(blocks) {
			b := blocks[it.idx]
			if it.pos < b.Start {
				it.pos = b.Start
			}
			if it.pos >= b.endex() {
				it.idx++
				if it.idx < len(blocks) {
					it.pos = blocks[it.idx].Start
				}
				continue
			}
			if it.pos >= it.hi {
				return false
			}
			it.item = Item{Addr: it.pos, Value: b.Data[it.pos-b.Start]}
			it.pos++
			return true
		}
		return false
	}
	for it.idx >= 0 {
		b := blocks[it.idx]
		if it.pos >= b.endex() {
			it.pos = b.endex() - 1
		}
		if it.pos < b.Start {
			it.idx--
			if it.idx >= 0 {
				it.pos = blocks[it.idx].endex() - 1
			}
			continue
		}
		if it.pos < it.lo {
			return false
		}
		it.item = Item{Addr: it.pos, Value: b.Data[it.pos-b.Start]}
		it.pos--
		return true
	}
	return false
}

// Item is the (address, byte) pair last yielded by Next.
func (it *ItemIter) Item() Item { return it.item }

// KeyIter lazily yields populated addresses only.
type KeyIter struct{ inner *ItemIter }

// Keys returns a forward iterator over populated addresses.
func (m *Memory) Keys(start, endex *Address) *KeyIter { return &KeyIter{m.Items(start, endex)} }

// RKeys returns a reverse iterator over populated addresses.
func (m *Memory) RKeys(start, endex *Address) *KeyIter { return &KeyIter{m.RItems(start, endex)} }

// Next advances the iterator.
func (it *KeyIter) Next() bool { return it.inner.Next() }

// Addr is the address last yielded by Next.
func (it *KeyIter) Addr() Address { return it.inner.item.Addr }

// IntervalIter lazily yields each block's (start, endex) clipped to a
// range.
type IntervalIter struct {
	m      *Memory
	idx    int
	hi     int
	s, e   Address
	cStart Address
	cEndex Address
}

// Intervals returns an iterator over each block's clipped span within
// [start, endex).
func (m *Memory) Intervals(start, endex *Address) *IntervalIter {
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	return &IntervalIter{m: m, idx: m.blocks.indexStart(s), hi: m.blocks.indexEndex(e), s: s, e: e}
}

// Next advances the iterator.
func (it *IntervalIter) Next() bool {
	if it.idx >= it.hi {
		return false
	}
	b := it.m.blocks.blocks[it.idx]
	it.cStart = maxAddress(b.Start, it.s)
	it.cEndex = minAddress(b.endex(), it.e)
	it.idx++
	return true
}

// Span is the interval last yielded by Next.
func (it *IntervalIter) Span() (Address, Address) { return it.cStart, it.cEndex }

// BlockIter lazily yields a copy of each block's data, clipped to a
// range.
type BlockIter struct {
	m     *Memory
	idx   int
	hi    int
	s, e  Address
	block RawBlock
}

// Blocks returns an iterator over each block (start, data copy) within
// [start, endex).
func (m *Memory) Blocks(start, endex *Address) *BlockIter {
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	return &BlockIter{m: m, idx: m.blocks.indexStart(s), hi: m.blocks.indexEndex(e), s: s, e: e}
}

// Next advances the iterator.
func (it *BlockIter) Next() bool {
	if it.idx >= it.hi {
		return false
	}
	b := it.m.blocks.blocks[it.idx]
	bs := maxAddress(b.Start, it.s)
	be := minAddress(b.endex(), it.e)
	it.block = RawBlock{Start: bs, Data: append([]Byte(nil), b.Data[bs-b.Start:be-b.Start]...)}
	it.idx++
	return true
}

// Block is the block last yielded by Next.
func (it *BlockIter) Block() RawBlock { return it.block }

// gapEntry is one entry of a precomputed Gaps() sequence. A nil Start or
// Endex marks an unbounded (open) side.
type gapEntry struct {
	Start *Address
	Endex *Address
}

// GapIter iterates the (possibly open-ended) gap intervals of a range.
// Its cardinality is bounded by the block count, not by the address
// range, so it is precomputed eagerly at construction.
type GapIter struct {
	entries []gapEntry
	i       int
}

// Gaps returns an iterator over the gap intervals within [start, endex).
// When start/endex are both nil and no bounds are set, the leading
// and/or trailing gap is reported with a nil Start/Endex.
func (m *Memory) Gaps(start, endex *Address) *GapIter {
	var s, e Address
	openLeft, openRight := false, false
	if start != nil {
		s = *start
	} else if m.bounds.hasStart {
		s = m.bounds.start
	} else {
		s = m.ContentStart()
		openLeft = true
	}
	if endex != nil {
		e = *endex
	} else if m.bounds.hasEndex {
		e = m.bounds.endex
	} else {
		e = m.ContentEndex()
		openRight = true
	}

	var entries []gapEntry
	cur := s
	lo := m.blocks.indexStart(s)
	hi := m.blocks.indexEndex(e)
	for i := lo; i < hi; i++ {
		b := m.blocks.blocks[i]
		if b.Start > cur {
			ge := minAddress(b.Start, e)
			if ge > cur {
				entries = append(entries, gapEntry{addrPtr(cur), addrPtr(ge)})
			}
		}
		if be := b.endex(); be > cur {
			cur = be
		}
	}
	if cur < e {
		entries = append(entries, gapEntry{addrPtr(cur), addrPtr(e)})
	}
	// s/e mark where the interior scan started/stopped, not necessarily
	// where content actually begins/ends, so an open side's sentinel
	// gap only coincides with an already-scanned entry when the scan
	// window is itself empty of content right at that edge (no content
	// at all, or a bound_start/bound_endex that falls short of it).
	// Otherwise the open side contributes a gap of its own that the
	// interior scan, which starts exactly at the first block, never
	// produces.
	if openLeft {
		if len(entries) > 0 && *entries[0].Start == s {
			entries[0].Start = nil
		} else {
			entries = append([]gapEntry{{nil, addrPtr(s)}}, entries...)
		}
	}
	if openRight {
		if last := len(entries) - 1; last >= 0 && *entries[last].Endex == e {
			entries[last].Endex = nil
		} else {
			entries = append(entries, gapEntry{addrPtr(e), nil})
		}
	}
	return &GapIter{entries: entries}
}

func addrPtr(a Address) *Address { return &a }

// Next advances the iterator.
func (it *GapIter) Next() bool {
	if it.i >= len(it.entries) {
		return false
	}
	it.i++
	return true
}

// Span is the gap last yielded by Next; a nil bound means open-ended.
func (it *GapIter) Span() (*Address, *Address) {
	e := it.entries[it.i-1]
	return e.Start, e.Endex
}

// ContentBlocks iterates every block, ignoring bounds.
func (m *Memory) ContentBlocks() *BlockIter {
	s, e := m.ContentStart(), m.ContentEndex()
	return m.Blocks(&s, &e)
}

// ContentItems iterates every populated (addr, byte) pair, ignoring
// bounds.
func (m *Memory) ContentItems() *ItemIter {
	s, e := m.ContentStart(), m.ContentEndex()
	return m.Items(&s, &e)
}

// ContentKeys iterates every populated address, ignoring bounds.
func (m *Memory) ContentKeys() *KeyIter {
	s, e := m.ContentStart(), m.ContentEndex()
	return m.Keys(&s, &e)
}

// ContentValueIter lazily yields populated byte values only (no
// addresses, no absence).
type ContentValueIter struct{ inner *ItemIter }

// ContentValues iterates every populated byte value, ignoring bounds and
// never emitting absence.
func (m *Memory) ContentValues() *ContentValueIter {
	return &ContentValueIter{m.ContentItems()}
}

// Next advances the iterator.
func (it *ContentValueIter) Next() bool { return it.inner.Next() }

// Value is the value last yielded by Next.
func (it *ContentValueIter) Value() Byte { return it.inner.item.Value }

// ChopIter lazily yields fixed-width (addr, data) tiles covering a
// range; the first tile may be short when align is set and the range
// start is not a multiple of the width, and the last tile may be short
// when endex cuts it.
type ChopIter struct {
	m          *Memory
	step       Address
	align      bool
	cur, endex Address
	addr       Address
	data       []Byte
}

// Chop returns a tiling iterator of width step over [start, endex). If
// align is set, tile boundaries fall on multiples of step, so the first
// tile runs from start only up to the next multiple of step.
func (m *Memory) Chop(step int, start, endex *Address, align bool) (*ChopIter, error) {
	if step < 1 {
		return nil, &ValueRangeError{Field: "step", Value: int64(step)}
	}
	s := m.resolveStart(start)
	e := m.resolveEndex(endex)
	return &ChopIter{m: m, step: Address(step), align: align, cur: s, endex: e}, nil
}

// Next advances the iterator.
func (it *ChopIter) Next() bool {
	if it.cur >= it.endex {
		return false
	}
	tend := it.cur + it.step
	if it.align {
		tend -= ((it.cur % it.step) + it.step) % it.step
	}
	if tend > it.endex {
		tend = it.endex
	}
	it.addr = it.cur
	cur, tendCopy := it.cur, tend
	it.data = it.m.ToBytes(&cur, &tendCopy, nil)
	it.cur = tend
	return true
}

// Addr is the tile start address last yielded by Next.
func (it *ChopIter) Addr() Address { return it.addr }

// Data is the tile data last yielded by Next.
func (it *ChopIter) Data() []Byte { return it.data }

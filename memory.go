// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

import (
	"encoding/hex"
	"math"
)

const (
	minAddr Address = math.MinInt64
	maxAddr Address = math.MaxInt64
)

// Memory is the main façade (spec §4.3): a sparse byte store that
// behaves simultaneously as a sequence over [Start, Endex) and a
// mapping from Address to Byte over populated addresses only.
type Memory struct {
	blocks    blockVector
	bounds    Bounds
	viewCount int
}

// RawBlock is an address/data pair used by FromBlocks and ToBlocks.
type RawBlock struct {
	Start Address
	Data  []Byte
}

// Item is an address/byte pair used by FromItems and the Items iterator.
type Item struct {
	Addr  Address
	Value Byte
}

// New returns an empty, unbounded Memory.
func New() *Memory {
	return &Memory{}
}

// NewBounded returns an empty Memory clamped by bounds.
func NewBounded(bounds Bounds) *Memory {
	return &Memory{bounds: bounds}
}

// FromBytes builds a Memory from a contiguous byte buffer placed at
// offset. If copyData is false, data is taken by reference. If validate
// is true (the normal case) the result is checked with Validate.
func FromBytes(data []Byte, offset Address, bounds Bounds, copyData, validate bool) (*Memory, error) {
	m := &Memory{bounds: bounds}
	if len(data) > 0 {
		buf := data
		if copyData {
			buf = append([]Byte(nil), data...)
		}
		m.blocks.blocks = []*block{{Start: offset, Data: buf}}
	}
	m.clampToBounds()
	if validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromBlocks builds a Memory from an arbitrary (not necessarily sorted
// or merged) set of blocks, each shifted by offset. When validate is
// true, blocks are normalised: sorted by Start and merged where
// adjacent or overlapping (later blocks in the input win on overlap).
func FromBlocks(raw []RawBlock, offset Address, bounds Bounds, copyData, validate bool) (*Memory, error) {
	m := &Memory{bounds: bounds}
	if validate {
		for _, rb := range raw {
			if len(rb.Data) == 0 {
				continue
			}
			m.blocks.write(rb.Start+offset, rb.Data)
		}
	} else {
		blocks := make([]*block, 0, len(raw))
		for _, rb := range raw {
			data := rb.Data
			if copyData {
				data = append([]Byte(nil), rb.Data...)
			}
			blocks = append(blocks, &block{Start: rb.Start + offset, Data: data})
		}
		m.blocks.blocks = blocks
	}
	m.clampToBounds()
	if validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromMemory copies (or, if copyData is false, shares the block buffers
// of) another Memory, shifted by offset.
func FromMemory(other *Memory, offset Address, bounds Bounds, copyData bool) *Memory {
	m := &Memory{bounds: bounds}
	src := other.blocks.blocks
	if copyData {
		for _, b := range src {
			m.blocks.blocks = append(m.blocks.blocks, &block{Start: b.Start + offset, Data: append([]Byte(nil), b.Data...)})
		}
	} else {
		for _, b := range src {
			m.blocks.blocks = append(m.blocks.blocks, &block{Start: b.Start + offset, Data: b.Data})
		}
	}
	m.clampToBounds()
	return m
}

// FromItems builds a Memory from (addr, byte) pairs; a later item at
// the same address overwrites an earlier one.
func FromItems(items []Item, offset Address, bounds Bounds, validate bool) (*Memory, error) {
	m := &Memory{bounds: bounds}
	for _, it := range items {
		m.blocks.write(it.Addr+offset, []Byte{it.Value})
	}
	m.clampToBounds()
	if validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromValues builds a Memory from consecutive optional bytes starting at
// offset; absent entries produce gaps.
func FromValues(values []OptByte, offset Address, bounds Bounds, validate bool) (*Memory, error) {
	m := &Memory{bounds: bounds}
	var run []Byte
	runStart := offset
	flush := func() {
		if len(run) > 0 {
			m.blocks.write(runStart, run)
			run = nil
		}
	}
	for i, v := range values {
		a := offset + Address(i)
		if v.Present {
			if len(run) == 0 {
				runStart = a
			}
			run = append(run, v.Value)
		} else {
			flush()
		}
	}
	flush()
	m.clampToBounds()
	if validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromHex builds a Memory holding a single contiguous block at address 0
// decoded from a hex string.
func FromHex(hexstr string) (*Memory, error) {
	data, err := hex.DecodeString(hexstr)
	if err != nil {
		return nil, err
	}
	m := &Memory{}
	if len(data) > 0 {
		m.blocks.blocks = []*block{{Start: 0, Data: data}}
	}
	return m, nil
}

// Bounds returns the Memory's current bounds.
func (m *Memory) Bounds() Bounds { return m.bounds }

// SetBounds assigns new bounds, retroactively clipping existing blocks.
func (m *Memory) SetBounds(bounds Bounds) {
	m.bounds = bounds
	m.clampToBounds()
}

func (m *Memory) clampToBounds() {
	if m.bounds.hasStart {
		m.blocks.clear(minAddr, m.bounds.start)
	}
	if m.bounds.hasEndex {
		m.blocks.clear(m.bounds.endex, maxAddr)
	}
}

// ContentStart is the first block's start address, or 0 / bound_start
// when there is no content.
func (m *Memory) ContentStart() Address {
	if n := len(m.blocks.blocks); n > 0 {
		return m.blocks.blocks[0].Start
	}
	if m.bounds.hasStart {
		return m.bounds.start
	}
	return 0
}

// ContentEndex is the last block's endex, or 0 / bound_endex when there
// is no content.
func (m *Memory) ContentEndex() Address {
	if n := len(m.blocks.blocks); n > 0 {
		return m.blocks.blocks[n-1].endex()
	}
	if m.bounds.hasEndex {
		return m.bounds.endex
	}
	return 0
}

// ContentSpan returns (ContentStart, ContentEndex).
func (m *Memory) ContentSpan() (Address, Address) {
	return m.ContentStart(), m.ContentEndex()
}

// ContentSize is the sum of all block lengths.
func (m *Memory) ContentSize() int64 {
	var n int64
	for _, b := range m.blocks.blocks {
		n += int64(len(b.Data))
	}
	return n
}

// ContentParts is the number of blocks.
func (m *Memory) ContentParts() int { return len(m.blocks.blocks) }

// Start is ContentStart, overridden by bound_start when set.
func (m *Memory) Start() Address {
	if m.bounds.hasStart {
		return m.bounds.start
	}
	return m.ContentStart()
}

// Endex is ContentEndex, overridden by bound_endex when set.
func (m *Memory) Endex() Address {
	if m.bounds.hasEndex {
		return m.bounds.endex
	}
	return m.ContentEndex()
}

// Span returns (Start, Endex).
func (m *Memory) Span() (Address, Address) {
	return m.Start(), m.Endex()
}

// Len is max(0, Endex-Start).
func (m *Memory) Len() int64 {
	d := m.Endex() - m.Start()
	if d < 0 {
		return 0
	}
	return int64(d)
}

// Contiguous reports whether the memory has at most one block and its
// bounds (if any) introduce no gap around it.
func (m *Memory) Contiguous() bool {
	n := len(m.blocks.blocks)
	if n > 1 {
		return false
	}
	if n == 0 {
		return m.Start() == m.Endex()
	}
	b := m.blocks.blocks[0]
	return m.Start() == b.Start && m.Endex() == b.endex()
}

func (m *Memory) resolveStart(p *Address) Address {
	if p != nil {
		return *p
	}
	return m.Start()
}

func (m *Memory) resolveEndex(p *Address) Address {
	if p != nil {
		return *p
	}
	return m.Endex()
}

// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

import "golang.org/x/exp/slices"

// blockVector holds the ordered, non-overlapping, non-adjacent sequence
// of blocks backing a Memory (spec §4.1). It maintains invariants I1-I3
// across every mutation:
//
//	I1 every block's Data is non-empty
//	I2 blocks[i].Start < blocks[i+1].Start
//	I3 blocks[i].Start+len(blocks[i].Data) < blocks[i+1].Start
type blockVector struct {
	blocks []*block
}

func (bv *blockVector) len() int { return len(bv.blocks) }

func (bv *blockVector) clone() *blockVector {
	out := make([]*block, len(bv.blocks))
	for i, b := range bv.blocks {
		out[i] = b.clone()
	}
	return &blockVector{blocks: out}
}

// indexEndex returns the smallest index i with blocks[i].Start >= a.
// O(log n) via binary search on Start.
func (bv *blockVector) indexEndex(a Address) int {
	i, _ := slices.BinarySearchFunc(bv.blocks, a, func(b *block, a Address) int {
		switch {
		case b.Start < a:
			return -1
		case b.Start > a:
			return 1
		default:
			return 0
		}
	})
	return i
}

// indexStart returns the smallest index i with blocks[i].endex() > a.
// Block endices are strictly increasing (I2+I3), so this is also
// O(log n) via binary search.
func (bv *blockVector) indexStart(a Address) int {
	i, _ := slices.BinarySearchFunc(bv.blocks, a, func(b *block, a Address) int {
		if b.endex() <= a {
			return -1
		}
		return 1
	})
	return i
}

// indexAt returns the index of the block containing a, or ok=false if a
// falls in a gap.
func (bv *blockVector) indexAt(a Address) (idx int, ok bool) {
	i := bv.indexStart(a)
	if i < len(bv.blocks) && bv.blocks[i].Start <= a {
		return i, true
	}
	return i, false
}

// mergeAround merges blocks[idx] with whichever neighbours now touch or
// overlap it, applying the merge rule: concatenate Data, keep the lower
// Start, drop the other block.
func (bv *blockVector) mergeAround(idx int) {
	for idx > 0 && bv.blocks[idx-1].endex() >= bv.blocks[idx].Start {
		bv.mergeTwo(idx - 1, idx)
		idx--
	}
	for idx+1 < len(bv.blocks) && bv.blocks[idx].endex() >= bv.blocks[idx+1].Start {
		bv.mergeTwo(idx, idx+1)
	}
}

// mergeTwo merges blocks[j] into blocks[i] (j == i+1) and removes blocks[j].
func (bv *blockVector) mergeTwo(i, j int) {
	left := bv.blocks[i]
	right := bv.blocks[j]
	overlap := left.endex() - right.Start
	if overlap < 0 {
		overlap = 0
	}
	if overlap < Address(len(right.Data)) {
		left.Data = append(left.Data, right.Data[overlap:]...)
	}
	bv.blocks = slices.Delete(bv.blocks, j, j+1)
	logger.Printf("merged block at %d into block at %d", right.Start, left.Start)
}

// write overwrites [start, start+len(data)), splitting or truncating
// blocks at both edges and removing any fully covered block, then
// inserts the new block and merges it with any touching neighbour.
func (bv *blockVector) write(start Address, data []Byte) {
	if len(data) == 0 {
		return
	}
	endex := start + Address(len(data))

	lo := bv.indexStart(start)
	hi := bv.indexEndex(endex)

	var leftRem, rightRem *block
	if lo < hi {
		first := bv.blocks[lo]
		if first.Start < start {
			n := start - first.Start
			leftRem = &block{Start: first.Start, Data: append([]Byte(nil), first.Data[:n]...)}
		}
		last := bv.blocks[hi-1]
		if last.endex() > endex {
			n := endex - last.Start
			rightRem = &block{Start: endex, Data: append([]Byte(nil), last.Data[n:]...)}
		}
	}

	newBlock := &block{Start: start, Data: append([]Byte(nil), data...)}
	replacement := make([]*block, 0, 3)
	if leftRem != nil {
		replacement = append(replacement, leftRem)
	}
	replacement = append(replacement, newBlock)
	if rightRem != nil {
		replacement = append(replacement, rightRem)
	}

	bv.blocks = slices.Replace(bv.blocks, lo, hi, replacement...)
	idx := lo
	if leftRem != nil {
		idx++
	}
	bv.mergeAround(idx)
}

// clear removes [start, endex) from the content, leaving a gap. Blocks
// at either edge are truncated or split; no shifting occurs.
func (bv *blockVector) clear(start, endex Address) {
	if endex <= start {
		return
	}
	lo := bv.indexStart(start)
	hi := bv.indexEndex(endex)
	if lo >= hi {
		return
	}

	var leftRem, rightRem *block
	first := bv.blocks[lo]
	if first.Start < start {
		leftRem = &block{Start: first.Start, Data: append([]Byte(nil), first.Data[:start-first.Start]...)}
	}
	last := bv.blocks[hi-1]
	if last.endex() > endex {
		n := endex - last.Start
		rightRem = &block{Start: endex, Data: append([]Byte(nil), last.Data[n:]...)}
	}

	replacement := make([]*block, 0, 2)
	if leftRem != nil {
		replacement = append(replacement, leftRem)
	}
	if rightRem != nil {
		replacement = append(replacement, rightRem)
	}
	bv.blocks = slices.Replace(bv.blocks, lo, hi, replacement...)
}

// deleteRange removes [start, endex) and shifts every remaining block
// with Start >= endex left by (endex - start), possibly merging a seam.
func (bv *blockVector) deleteRange(start, endex Address) {
	if endex <= start {
		return
	}
	bv.clear(start, endex)
	shiftLen := endex - start
	idx := bv.indexEndex(endex)
	for i := idx; i < len(bv.blocks); i++ {
		bv.blocks[i].Start -= shiftLen
	}
	if idx < len(bv.blocks) {
		bv.mergeAround(idx)
	}
}

// reserve shifts every block with Start >= start right by size,
// splitting a block that start falls inside of, and leaves the
// resulting [start, start+size) span empty.
func (bv *blockVector) reserve(start Address, size Address) {
	if size <= 0 {
		return
	}
	if idx, ok := bv.indexAt(start); ok {
		b := bv.blocks[idx]
		if start > b.Start {
			leftData := append([]Byte(nil), b.Data[:start-b.Start]...)
			rightData := append([]Byte(nil), b.Data[start-b.Start:]...)
			bv.blocks[idx] = &block{Start: b.Start, Data: leftData}
			right := &block{Start: start, Data: rightData}
			bv.blocks = slices.Insert(bv.blocks, idx+1, right)
		}
	}
	shiftFrom := bv.indexEndex(start)
	for i := shiftFrom; i < len(bv.blocks); i++ {
		bv.blocks[i].Start += size
	}
}

// insert shifts every block with Start >= start right by len(data),
// splitting a block that start falls inside of, then writes data at
// start (now guaranteed to be a gap).
func (bv *blockVector) insert(start Address, data []Byte) {
	if len(data) == 0 {
		return
	}
	bv.reserve(start, Address(len(data)))
	bv.write(start, data)
}

// shift translates every block by offset, unconditionally.
func (bv *blockVector) shift(offset Address) {
	for _, b := range bv.blocks {
		b.Start += offset
	}
}

// validate checks invariants I1-I3.
func (bv *blockVector) validate() error {
	for i, b := range bv.blocks {
		if len(b.Data) == 0 {
			return &InvariantBrokenError{Reason: "empty block data"}
		}
		if i > 0 {
			prev := bv.blocks[i-1]
			if !(prev.Start < b.Start) {
				return &InvariantBrokenError{Reason: "blocks not strictly sorted by start"}
			}
			if !(prev.endex() < b.Start) {
				return &InvariantBrokenError{Reason: "blocks overlap or touch without merging"}
			}
		}
	}
	return nil
}

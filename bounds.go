// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

// Bounds is the optional half-open [Start, Endex) clamp a Memory may
// apply to every mutating operation (spec §4.3.4). Either end may be
// unset; HasStart/HasEndex report which.
type Bounds struct {
	start, endex Address
	hasStart     bool
	hasEndex     bool
}

// NewBounds returns a Bounds with both ends set. Panics if start > endex.
func NewBounds(start, endex Address) Bounds {
	if start > endex {
		panic("sparsemem: bound_start > bound_endex")
	}
	return Bounds{start: start, endex: endex, hasStart: true, hasEndex: true}
}

// NewBoundsStart returns a Bounds with only bound_start set.
func NewBoundsStart(start Address) Bounds {
	return Bounds{start: start, hasStart: true}
}

// NewBoundsEndex returns a Bounds with only bound_endex set.
func NewBoundsEndex(endex Address) Bounds {
	return Bounds{endex: endex, hasEndex: true}
}

// HasStart reports whether bound_start is set.
func (b Bounds) HasStart() bool { return b.hasStart }

// HasEndex reports whether bound_endex is set.
func (b Bounds) HasEndex() bool { return b.hasEndex }

// Start returns bound_start; valid only if HasStart.
func (b Bounds) Start() Address { return b.start }

// Endex returns bound_endex; valid only if HasEndex.
func (b Bounds) Endex() Address { return b.endex }

// IsZero reports whether neither end is set (no clamp at all).
func (b Bounds) IsZero() bool { return !b.hasStart && !b.hasEndex }

// clip clamps [start, endex) to the bound, returning a possibly-empty
// (endex <= start) range.
func (b Bounds) clip(start, endex Address) (Address, Address) {
	if b.hasStart && start < b.start {
		start = b.start
	}
	if b.hasEndex && endex > b.endex {
		endex = b.endex
	}
	if b.hasStart && endex < b.start {
		endex = b.start
	}
	if b.hasEndex && start > b.endex {
		start = b.endex
	}
	return start, endex
}

// contains reports whether a lies within the bound (true if unbounded).
func (b Bounds) contains(a Address) bool {
	if b.hasStart && a < b.start {
		return false
	}
	if b.hasEndex && a >= b.endex {
		return false
	}
	return true
}

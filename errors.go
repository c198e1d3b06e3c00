// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

import "fmt"

// Sentinel errors for failure conditions that carry no op-specific data.
var (
	// ErrNotFound is returned by Index, RIndex and similar lookups that
	// require a match and did not find one.
	ErrNotFound = fmt.Errorf("sparsemem: not found")

	// ErrDataGap is returned by a strict-mode MemoryIO.Read that
	// encountered an empty cell. Hex reports ErrContiguityRequired
	// instead, and ToBytes has no strict mode: it fills gaps.
	ErrDataGap = fmt.Errorf("sparsemem: data gap")

	// ErrContiguityRequired is returned by an operation that needs a
	// single block (e.g. Hex) when the memory has multiple blocks or gaps
	// within its span. A memory with no content and an empty span counts
	// as contiguous.
	ErrContiguityRequired = fmt.Errorf("sparsemem: contiguity required")
)

// OutOfBoundsError is returned when an address or range lies outside the
// currently active Bounds for a mutating operation that cannot clip.
type OutOfBoundsError struct {
	Start, Endex Address
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("sparsemem: [%d, %d) out of bounds", e.Start, e.Endex)
}

// ValueRangeError is returned when a byte assignment falls outside
// 0..=255, or a size/step argument is negative or less than 1 where the
// operation requires a positive step.
type ValueRangeError struct {
	Field string
	Value int64
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("sparsemem: %s=%d out of range", e.Field, e.Value)
}

// InvariantBrokenError is returned by Validate when it detects an I1-I3
// block-vector invariant violation or a bounds violation. It only arises
// from externally constructed states built with validate=false.
type InvariantBrokenError struct {
	Reason string
}

func (e *InvariantBrokenError) Error() string {
	return fmt.Sprintf("sparsemem: invariant broken: %s", e.Reason)
}

// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package streamio wraps a sparsemem.Memory in a seekable byte-stream
// contract (spec §4.5), tracking a cursor the way
// wasm/internal/readpos tracks a read position over an io.Reader in
// the teacher repository.
package streamio

import (
	"io"
	"math"

	"github.com/vmem/sparsemem"
)

// MemoryIO adapts a Memory to io.ReadWriteSeeker plus the extra
// block-aware operations named in spec §4.5.
type MemoryIO struct {
	mem      *sparsemem.Memory
	pos      sparsemem.Address
	fillByte byte
	strict   bool
}

// New wraps mem with a cursor starting at mem.Start(). Gaps read by
// Read default to filling with 0x00.
func New(mem *sparsemem.Memory) *MemoryIO {
	return &MemoryIO{mem: mem, pos: mem.Start()}
}

// SetFillByte changes the byte used to materialise gaps on Read (when
// not in strict mode). The default is 0x00.
func (s *MemoryIO) SetFillByte(b byte) { s.fillByte = b }

// SetStrict toggles strict mode: when true, Read fails with
// sparsemem.ErrDataGap instead of filling a gap.
func (s *MemoryIO) SetStrict(strict bool) { s.strict = strict }

// Tell returns the current cursor position.
func (s *MemoryIO) Tell() sparsemem.Address { return s.pos }

// Seek repositions the cursor per io.Seeker (whence is io.SeekStart,
// io.SeekCurrent or io.SeekEnd).
func (s *MemoryIO) Seek(offset int64, whence int) (int64, error) {
	var base sparsemem.Address
	switch whence {
	case io.SeekStart:
		base = s.mem.Start()
	case io.SeekCurrent:
		base = s.pos
	case io.SeekEnd:
		base = s.mem.Endex()
	default:
		return int64(s.pos), &WhenceError{Whence: whence}
	}
	s.pos = base + sparsemem.Address(offset)
	return int64(s.pos), nil
}

// WhenceError is returned by Seek for an unrecognised whence value.
type WhenceError struct{ Whence int }

func (e *WhenceError) Error() string { return "streamio: invalid whence" }

// Read fills p starting at the cursor, advancing it by the number of
// bytes read. Gaps are materialised as the configured fill byte, or, in
// strict mode, cause Read to stop and return sparsemem.ErrDataGap.
func (s *MemoryIO) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	end := s.mem.Endex()
	if s.pos >= end {
		return 0, io.EOF
	}
	n := sparsemem.Address(len(p))
	if avail := end - s.pos; avail < n {
		n = avail
	}
	start := s.pos
	for i := sparsemem.Address(0); i < n; i++ {
		a := start + i
		v := s.mem.Peek(a)
		if v.Present {
			p[i] = v.Value
		} else if s.strict {
			s.pos = a
			return int(i), sparsemem.ErrDataGap
		} else {
			p[i] = s.fillByte
		}
	}
	s.pos = start + n
	return int(n), nil
}

// Write writes p at the cursor and advances it by len(p). Bytes falling
// outside the Memory's bounds are silently clipped, per Memory.Write.
func (s *MemoryIO) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	s.mem.Write(s.pos, p)
	s.pos += sparsemem.Address(len(p))
	return len(p), nil
}

// SkipData advances the cursor to the end of the block it currently
// sits in, or leaves it unchanged if it sits in a gap.
func (s *MemoryIO) SkipData() {
	_, endex, v := s.mem.BlockSpan(s.pos)
	if v.Present {
		s.pos = endex
	}
}

// SkipHole advances the cursor to the start of the next block, or to
// Endex if no block follows.
func (s *MemoryIO) SkipHole() {
	_, endex, v := s.mem.BlockSpan(s.pos)
	if !v.Present {
		if e := s.mem.Endex(); endex > e {
			endex = e
		}
		s.pos = endex
	}
}

// Truncate clears all content at or past size.
func (s *MemoryIO) Truncate(size sparsemem.Address) {
	s.mem.Clear(size, math.MaxInt64)
}

// Peek reads up to len(p) bytes without advancing the cursor.
func (s *MemoryIO) Peek(p []byte) (int, error) {
	save := s.pos
	n, err := s.Read(p)
	s.pos = save
	return n, err
}

// ReadLine reads up to and including the next 0x0A terminator, or to
// EOF if none remains.
func (s *MemoryIO) ReadLine() ([]byte, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := s.Read(buf)
		if n == 1 {
			line = append(line, buf[0])
			if buf[0] == 0x0A {
				return line, nil
			}
		}
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return line, nil
			}
			return line, err
		}
	}
}

// ReadLines collects every remaining line via repeated ReadLine.
func (s *MemoryIO) ReadLines() ([][]byte, error) {
	var lines [][]byte
	for {
		line, err := s.ReadLine()
		if len(line) > 0 {
			lines = append(lines, line)
		}
		if err != nil {
			if err == io.EOF {
				return lines, nil
			}
			return lines, err
		}
	}
}

// GetValue materialises the whole populated-or-filled image over the
// Memory's span.
func (s *MemoryIO) GetValue() []byte {
	start, endex := s.mem.Span()
	return s.mem.ToBytes(&start, &endex, []byte{s.fillByte})
}

// GetBuffer returns a read-only View over the Memory's span. Callers
// must Release it when done.
func (s *MemoryIO) GetBuffer() *sparsemem.View {
	start, endex := s.mem.Span()
	return s.mem.AcquireView(start, endex)
}

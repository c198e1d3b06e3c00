// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparsemem provides a sparse, byte-addressable virtual memory
// container: an editable, random-access store of bytes whose address
// space is effectively unbounded and whose populated regions form a
// finite, sorted collection of non-overlapping, non-adjacent blocks.
//
// It is intended for emulator address spaces, firmware/hex-file editors,
// and interactive binary inspection, where data is naturally clustered
// and most of the address space is empty. Emptiness is a first-class
// state, distinct from the zero byte.
package sparsemem

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo toggles package-level trace logging of block merges
// performed by mutating operations. It is false by default and writes
// are discarded; flip it to route trace lines to os.Stderr.
var PrintDebugInfo = false

var logWriter io.Writer = os.Stderr

var logger *log.Logger

// debugWriter forwards trace lines to logWriter only while
// PrintDebugInfo is set, so flipping the flag takes effect at once.
type debugWriter struct{}

func (debugWriter) Write(p []byte) (int, error) {
	if !PrintDebugInfo {
		return len(p), nil
	}
	return logWriter.Write(p)
}

func init() {
	logger = log.New(debugWriter{}, "", log.Lshortfile)
}
